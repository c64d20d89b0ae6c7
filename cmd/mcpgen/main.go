// Copyright 2024 The mcpgen authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Binary mcpgen is the driver entrypoint: it reads the version selector
// and output path from MCP_MC/MCP_PATH (or their equivalent flags),
// loads the Protodef schema, runs it through mcgen and cgen, and writes
// the three output files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	log "github.com/golang/glog"

	"mcpgen/cgen"
	"mcpgen/protodef"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd wires one root command: flags bound into viper alongside
// AutomaticEnv, so MCP_MC/MCP_PATH are honored whether supplied as
// flags or environment variables.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcpgen",
		Short: "mcpgen generates packet codecs for a Minecraft protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	cmd.Flags().String("mc", "", "Target Minecraft protocol version (MCP_MC).")
	cmd.Flags().String("path", ".", "Output directory (MCP_PATH).")
	cmd.Flags().String("catalog", ".", "Directory containing the minecraft-data-shaped protocol.json catalog.")
	cmd.Flags().Bool("dry-run", false, "Build the schema tree and report errors without writing files.")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		viper.SetEnvPrefix("MCP")
		viper.AutomaticEnv()
		return viper.BindPFlags(cmd.Flags())
	}

	return cmd
}

// run executes one generation pass: load the schema, build the tree,
// and (unless dry-run) write particle.h/protocol.c/protocol.h.
func run() error {
	version := viper.GetString("mc")
	if version == "" {
		log.Exit("mcpgen: no protocol version given (set MCP_MC or pass --mc)")
	}
	outPath := viper.GetString("path")
	if outPath == "" {
		outPath = "."
	}
	catalogDir := viper.GetString("catalog")

	proto, err := protodef.LoadVersion(catalogDir, version)
	if err != nil {
		log.Exitf("mcpgen: loading schema for version %s: %v", version, err)
	}

	driver, err := cgen.NewDriver(proto)
	if err != nil {
		log.Exitf("mcpgen: %v", err)
	}

	if viper.GetBool("dry-run") {
		return nil
	}

	mcpDir := filepath.Join(outPath, "mcp")
	if err := os.MkdirAll(mcpDir, 0o755); err != nil {
		log.Exitf("mcpgen: could not create %s: %v", mcpDir, err)
	}

	writeLines(filepath.Join(mcpDir, "particle.h"), driver.ParticleHeader())
	writeLines(filepath.Join(mcpDir, "protocol.h"), driver.ProtocolHeader())
	writeLines(filepath.Join(outPath, "protocol.c"), driver.ProtocolImpl())

	return nil
}

// writeLines renders lines newline-joined into fn using an
// open-write-sync-close sequence.
func writeLines(fn string, lines []string) {
	f, err := os.Create(fn)
	if err != nil {
		log.Exitf("mcpgen: could not open output file %s: %v", fn, err)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(f, l); err != nil {
			log.Exitf("mcpgen: writing %s: %v", fn, err)
		}
	}
	if err := f.Sync(); err != nil {
		log.Exitf("mcpgen: could not sync %s: %v", fn, err)
	}
	if err := f.Close(); err != nil {
		log.Exitf("mcpgen: could not close %s: %v", fn, err)
	}
}
