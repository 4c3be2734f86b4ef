// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command dxfdump loads a DXF/DXB drawing and prints a summary of its
// sections, grounded on the teacher's own cmd-line inspection tool.
package main

import (
	"fmt"
	"os"

	"github.com/saferwall/dxf"
	"github.com/spf13/cobra"
)

var (
	asDXB   bool
	verbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "dxfdump <file>",
		Short: "Inspect a DXF/DXB drawing",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().BoolVar(&asDXB, "dxb", false, "load the file as a DXB binary drawing exchange stream instead of DXF")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every entity, object and table record")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dxfdump:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]

	if asDXB {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		d, err := dxf.LoadDXB(f, nil)
		if err != nil {
			return fmt.Errorf("loading %s as DXB: %w", path, err)
		}
		fmt.Printf("entities:    %d\n", len(d.Entities))
		if verbose {
			for _, e := range d.Entities {
				fmt.Printf("  %-12s handle=%s layer=%q\n", e.TypeName(), e.Data().Handle, e.Data().Layer)
			}
		}
		return nil
	}

	d, err := dxf.LoadFile(path, nil)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	fmt.Printf("version:     %s\n", d.Header.Version)
	fmt.Printf("handle seed: %s\n", d.Header.HandleSeed)
	fmt.Printf("code page:   %s\n", d.Header.CodePage)
	fmt.Printf("classes:     %d\n", len(d.Classes))
	fmt.Printf("tables:      %d\n", len(d.Tables))
	fmt.Printf("blocks:      %d\n", len(d.Blocks))
	fmt.Printf("entities:    %d\n", len(d.Entities))
	fmt.Printf("objects:     %d\n", len(d.Objects))
	if d.Thumbnail != nil {
		fmt.Printf("thumbnail:   %dx%d, %d bytes\n", d.Thumbnail.Width, d.Thumbnail.Height, len(d.Thumbnail.Data))
	}
	if len(d.Warnings) > 0 {
		fmt.Printf("warnings:\n")
		for _, w := range d.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	if verbose {
		for _, name := range d.TableOrder {
			tbl := d.Tables[name]
			fmt.Printf("\ntable %s (%d records):\n", name, len(tbl.Records))
			for _, r := range tbl.Records {
				fmt.Printf("  %-12s %s\n", r.TypeName(), r.Data().Name)
			}
		}
		fmt.Printf("\nentities:\n")
		for _, e := range d.Entities {
			fmt.Printf("  %-12s handle=%s layer=%q\n", e.TypeName(), e.Data().Handle, e.Data().Layer)
		}
		fmt.Printf("\nobjects:\n")
		for _, o := range d.Objects {
			fmt.Printf("  %-12s handle=%s\n", o.TypeName(), o.Data().Handle)
		}
	}

	return nil
}
