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
	"io"
	"os"

	"github.com/spf13/cobra"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [hexkey]",
	Short: "Decrypt a gamma6 encrypted file.",
	Long:  `Decrypt a file encrypted by the gamma6 block cipher.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}

func decrypt(args []string) {
	initCipher(args)
	fin, fout := getInputAndOutputFiles(false)
	defer fin.Close()
	rdr, opts, err := decryptStream(gammaCipher, fin)
	cobra.CheckErr(err)
	if len(outputFileName) == 0 {
		if ofName := headerFileName(opts.fileName); len(ofName) > 0 {
			if fout != os.Stdout {
				fout.Close()
			}
			fout, err = os.Create(ofName)
			cobra.CheckErr(err)
		}
	}
	defer fout.Close()
	_, err = io.Copy(fout, rdr)
	checkError(err)
}
