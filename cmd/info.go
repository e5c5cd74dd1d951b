/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bgallie/gamma6/cryptors"
	"github.com/bgallie/gamma6/cryptors/round"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the gamma6 cipher parameters and build information.",
	Run: func(cmd *cobra.Command, args []string) {
		printInfo(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(w io.Writer) {
	fmt.Fprintf(w, "Block size:   %d bits (%d words)\n", cryptors.BlockSize, cryptors.WordsPerBlock)
	fmt.Fprintf(w, "Key size:     %d words\n", cryptors.KeyWords)
	fmt.Fprintf(w, "Rounds:       %d\n", cryptors.Rounds)
	fmt.Fprintf(w, "Mix constant: %#08x\n", round.MixConstant)
	inv := round.Inverses()
	for i, c := range round.Constants() {
		fmt.Fprintf(w, "C%d:           %#08x (inverse %#08x)\n", i, c, inv[i])
	}
	fmt.Fprintf(w, "Version:      %s\n", Version)
	fmt.Fprintf(w, "Git commit:   %s (%s, %s)\n", GitCommit, GitBranch, GitState)
	fmt.Fprintf(w, "Git summary:  %s\n", GitSummary)
	fmt.Fprintf(w, "Build date:   %s\n", BuildDate)
}
