// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/ik5/voxmix/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List music tracks, voices and speaking styles",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printCatalog(cmd.OutOrStdout())
	},
}

func printCatalog(w io.Writer) {
	fmt.Fprintln(w, "Tracks:")
	for _, t := range catalog.Tracks() {
		fmt.Fprintf(w, "  %-10s %s\n", t.ID, t.Name)
	}

	fmt.Fprintln(w, "Voices:")
	for _, v := range catalog.Voices() {
		fmt.Fprintf(w, "  %-10s %s\n", v.ID, v.Description)
	}

	fmt.Fprintln(w, "Styles:")
	for _, s := range catalog.Styles() {
		fmt.Fprintf(w, "  %s\n", s.Label)
	}
}
