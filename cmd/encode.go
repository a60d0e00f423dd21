package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/TykTechnologies/graphql-froid/pkg/froid"
	"github.com/TykTechnologies/graphql-froid/pkg/jsonvalue"
)

var encodeTypeName string

var encodeCmd = &cobra.Command{
	Use:   "encode [json object]",
	Short: "encode prints the global id of an entity representation",
	Example: `froid encode --type DemoBook '{"bookId":1}'
froid encode '{"__typename":"DemoBook","bookId":1}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEncode(cmd.OutOrStdout(), encodeTypeName, args[0])
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVar(&encodeTypeName, "type", "", "entity type name, defaults to __typename of the object")
}

func runEncode(out io.Writer, typeName, input string) error {
	value, err := jsonvalue.Canonical.Unmarshal([]byte(input))
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	fields, err := value.AsObject()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	var representation froid.Representation
	if typeName != "" {
		representation = froid.Representation{TypeName: typeName, Fields: fields}
	} else if representation, err = froid.NewRepresentation(fields); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	service, err := newService(froid.Config{})
	if err != nil {
		return err
	}
	entity, err := service.EncodeRepresentation(representation)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, entity.ID)
	return err
}
