package cmd

// BuildMarker identifies the help text revision.
const BuildMarker = "v20121119"

const helpText = `simple-http-client ` + BuildMarker + `
Sends an HTTP request to the given URL, then receives and prints the HTTP response.
The request body is read from the file given by -req.

usage: simple-http-client <options>
options:
    -url=<url>       (required) target URL
    -method=<method> (required) method (GET, POST, etc.)
    -req=<path>      file containing the HTTP request body
                     omit for GET
    -log=<path>      file to write the log to
    -help            show this help
additional options:
    -config=<path>   config file (.json, .yaml)
    -env=<path>      dotenv file exported before reading SHC_* variables
    -verbose         debug logging on stderr
`

// HelpText returns the usage message printed on -help and on usage errors.
func HelpText() string {
	return helpText
}
