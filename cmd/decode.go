package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/TykTechnologies/graphql-froid/pkg/froid"
)

var decodeIncludeID bool

var decodeCmd = &cobra.Command{
	Use:     "decode [global id]",
	Short:   "decode prints the entity fields stored in a global id",
	Example: "froid decode RGVtb0Jvb2s6ZXlKaWIyOXJTV1FpT2pGOQ==",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecode(cmd.OutOrStdout(), args[0], decodeIncludeID)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().BoolVar(&decodeIncludeID, "include-id", false, "add the global id as id to the output")
}

func runDecode(out io.Writer, id string, includeID bool) error {
	service, err := newService(froid.Config{IncludeID: includeID})
	if err != nil {
		return err
	}

	const key = "node"
	resolved, err := service.ResolveNodes([]froid.NodeReference{{ResponseKey: key, IDValue: id}})
	if err != nil {
		return err
	}

	data, err := resolved[key].MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
