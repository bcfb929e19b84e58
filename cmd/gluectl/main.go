// Package main provides the gluectl CLI for managing schemas in an AWS Glue
// Schema Registry and for encoding/decoding SalesforceAudit records.
//
// Usage:
//
//	gluectl create --schema SalesforceAudit --format AVRO --definition-file audit.avsc
//	gluectl encode --schema SalesforceAudit --event-id evt-001 --event-name Create
//
// Registry name and region resolve from flags, then the GLUE_REGISTRY_NAME
// and AWS_REGION environment variables, then an optional config file.
package main

import (
	"fmt"
	"os"

	"github.com/ansumanroy/glueregistry-commons/cmd/gluectl/commands"
)

var version = "dev"

func main() {
	if err := commands.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
