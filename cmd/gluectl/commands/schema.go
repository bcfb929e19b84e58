package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ansumanroy/glueregistry-commons/pkg/registry"
)

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		schemaName     string
		format         string
		definitionFile string
		compatibility  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new schema with its first version",
		RunE: func(cmd *cobra.Command, args []string) error {
			definition, err := os.ReadFile(definitionFile)
			if err != nil {
				return fmt.Errorf("failed to read definition file: %w", err)
			}

			client, log, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			info, err := client.CreateSchema(cmd.Context(), schemaName,
				registry.DataFormat(strings.ToUpper(format)),
				string(definition),
				registry.Compatibility(strings.ToUpper(compatibility)))
			if err != nil {
				return err
			}

			log.Sugar().Infof("created schema %s version %d (%s)", schemaName, info.VersionNumber, info.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Schema name (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "AVRO", "Data format: AVRO, JSON or PROTOBUF")
	cmd.Flags().StringVarP(&definitionFile, "definition-file", "d", "", "File containing the schema definition (required)")
	cmd.Flags().StringVarP(&compatibility, "compatibility", "c", "BACKWARD", "Compatibility mode")

	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("definition-file")

	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	var (
		schemaName string
		versionNum int64
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a schema, or one version's definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			if versionNum > 0 {
				version, err := client.GetSchemaVersion(cmd.Context(), schemaName, versionNum)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version.Definition)
				return nil
			}

			schema, err := client.GetSchema(cmd.Context(), schemaName)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:          %s\n", schema.Name)
			fmt.Fprintf(out, "Format:        %s\n", schema.DataFormat)
			fmt.Fprintf(out, "Compatibility: %s\n", schema.Compatibility)
			fmt.Fprintf(out, "Latest:        %d\n", schema.LatestVersion)
			if schema.Description != "" {
				fmt.Fprintf(out, "Description:   %s\n", schema.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Schema name (required)")
	cmd.Flags().Int64Var(&versionNum, "schema-version", 0, "Print the definition of this version instead")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schemas in the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			schemas, err := client.ListSchemas(cmd.Context())
			if err != nil {
				return err
			}

			if len(schemas) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no schemas found")
				return nil
			}

			lines := lo.Map(schemas, func(s registry.SchemaSummary, _ int) string {
				if s.Description != "" {
					return fmt.Sprintf("%s\t%s\t%s", s.Name, s.Status, s.Description)
				}
				return fmt.Sprintf("%s\t%s", s.Name, s.Status)
			})
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return nil
		},
	}
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var (
		schemaName     string
		definitionFile string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new version of an existing schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			definition, err := os.ReadFile(definitionFile)
			if err != nil {
				return fmt.Errorf("failed to read definition file: %w", err)
			}

			client, log, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			info, err := client.RegisterSchemaVersion(cmd.Context(), schemaName, string(definition))
			if err != nil {
				return err
			}

			log.Sugar().Infof("registered %s version %d (%s)", schemaName, info.VersionNumber, info.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Schema name (required)")
	cmd.Flags().StringVarP(&definitionFile, "definition-file", "d", "", "File containing the new definition (required)")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("definition-file")

	return cmd
}

func newSetCompatibilityCmd(opts *rootOptions) *cobra.Command {
	var (
		schemaName    string
		compatibility string
	)

	cmd := &cobra.Command{
		Use:   "set-compatibility",
		Short: "Change a schema's compatibility mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, log, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			mode := registry.Compatibility(strings.ToUpper(compatibility))
			if err := client.UpdateSchemaCompatibility(cmd.Context(), schemaName, mode); err != nil {
				return err
			}

			log.Sugar().Infof("schema %s compatibility set to %s", schemaName, mode)
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Schema name (required)")
	cmd.Flags().StringVarP(&compatibility, "compatibility", "c", "", "New compatibility mode (required)")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("compatibility")

	return cmd
}
