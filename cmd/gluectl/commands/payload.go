package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ansumanroy/glueregistry-commons/pkg/audit"
	"github.com/ansumanroy/glueregistry-commons/pkg/registry"
	"github.com/ansumanroy/glueregistry-commons/pkg/serde"
	avroserde "github.com/ansumanroy/glueregistry-commons/pkg/serde/avro"
	jsonserde "github.com/ansumanroy/glueregistry-commons/pkg/serde/json"
)

func newSerializer(format string, client *registry.Client) (serde.Serializer, serde.Deserializer, error) {
	switch format {
	case "avro":
		s := avroserde.NewSerializer(client)
		return s, s, nil
	case "json":
		s := jsonserde.NewSerializer(client)
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unsupported format %q, expected avro or json", format)
	}
}

func newEncodeCmd(opts *rootOptions) *cobra.Command {
	var (
		schemaName string
		format     string
		outFile    string
		eventID    string
		eventName  string
		timestamp  int64
		details    string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Serialize an audit event against a registered schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, log, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			serializer, _, err := newSerializer(format, client)
			if err != nil {
				return err
			}

			if eventID == "" {
				eventID = uuid.NewString()
			}
			if timestamp == 0 {
				timestamp = time.Now().UnixMilli()
			}

			event := audit.SalesforceAudit{
				EventID:      eventID,
				EventName:    eventName,
				Timestamp:    timestamp,
				EventDetails: details,
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			payload, err := serializer.Serialize(ctx, schemaName, event)
			if err != nil {
				return err
			}

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			if err := os.WriteFile(outFile, payload, 0o644); err != nil {
				return fmt.Errorf("failed to write payload: %w", err)
			}

			log.Sugar().Infof("wrote %d bytes to %s", len(payload), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Schema name (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "avro", "Wire format: avro or json")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file (defaults to stdout)")
	cmd.Flags().StringVar(&eventID, "event-id", "", "Event id (defaults to a random UUID)")
	cmd.Flags().StringVar(&eventName, "event-name", "", "Event name")
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "Epoch millis (defaults to now)")
	cmd.Flags().StringVar(&details, "details", "", "Event details")

	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func newDecodeCmd(opts *rootOptions) *cobra.Command {
	var (
		schemaName string
		format     string
		inFile     string
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Deserialize a payload and print the audit event as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(inFile)
			if err != nil {
				return fmt.Errorf("failed to read payload: %w", err)
			}

			client, _, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			_, deserializer, err := newSerializer(format, client)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			event, err := deserializer.Deserialize(ctx, schemaName, payload)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(event)
		},
	}

	cmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Schema name (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "avro", "Wire format: avro or json")
	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Payload file (required)")

	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
