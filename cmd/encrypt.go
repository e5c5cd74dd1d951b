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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	useASCII85  bool
	usePem      bool
	compression bool
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [hexkey]",
	Short: "Encrypt plaintext using gamma6",
	Long: `Encrypt plaintext using the gamma6 block cipher.
The plaintext is zero padded to a whole number of 16 byte blocks; the real
length is recorded in the header so decrypt can restore it exactly.`,
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().BoolVarP(&useASCII85, "useASCII85", "a", false, "use ASCII85 encoding")
	encryptCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
	encryptCmd.Flags().BoolVarP(&compression, "compress", "c", false, "compress input file using flate")
	cobra.CheckErr(viper.BindPFlag("compress", encryptCmd.Flags().Lookup("compress")))
}

func encrypt(args []string) {
	initCipher(args)
	var opts streamOptions
	switch viper.GetString("encoding") {
	case "ascii85":
		opts.useASCII85 = true
	case "pem":
		opts.usePem = true
	}
	// Flags given on the command line win over the configuration file.
	if useASCII85 || usePem {
		opts.useASCII85, opts.usePem = useASCII85 && !usePem, usePem
	}
	opts.compression = viper.GetBool("compress")
	if len(inputFileName) > 0 && inputFileName != "-" {
		opts.fileName = inputFileName
	}

	fin, fout := getInputAndOutputFiles(true)
	defer fin.Close()
	defer fout.Close()
	checkError(encryptStream(gammaCipher, fin, fout, opts))
}
