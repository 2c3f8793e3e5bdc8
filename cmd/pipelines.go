package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

var pipelinesCmd = &cobra.Command{
	Use:   "pipelines",
	Short: "List the available pipelines",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tINPUTS\tSTAGES\tDESCRIPTION")
		for _, v := range pipeline.Default.Variants() {
			stages := make([]string, len(v.Stages))
			for i, st := range v.Stages {
				stages[i] = st.Name
			}
			inputs := strings.Join(v.Params, ",")
			if inputs == "" {
				inputs = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Name, inputs, strings.Join(stages, ">"), v.Description)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(pipelinesCmd)
}
