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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgallie/gamma6/cryptors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spf13/viper"
)

var (
	cfgFile        string
	keyFileName    string
	inputFileName  string
	outputFileName string
	gammaCipher    *cryptors.Cipher
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

const (
	gamma6Suffix = ".g6"
	keyEnvName   = "GAMMA6_KEY"
)

var errNoKey = errors.New("You must supply a key.")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "gamma6",
	Short:   "A six round 128-bit block cipher",
	Long:    `gamma6 encrypts/decrypts files with a 128-bit key using six rounds of a multiply-mix-diffuse transform over 32-bit words.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gamma6.yaml)")
	rootCmd.PersistentFlags().StringVarP(&keyFileName, "keyFile", "k", "", "Name of the file holding the key (the first 16 bytes are used).")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the plaintext file to encrypt/decrypt.")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file containing the encrypted/decrypted plaintext.")
	cobra.CheckErr(viper.BindPFlag("keyfile", rootCmd.PersistentFlags().Lookup("keyFile")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".gamma6" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gamma6")
	}

	viper.SetDefault("encoding", "binary")
	viper.SetDefault("compress", false)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func initCipher(args []string) {
	key, err := getKey(args)
	cobra.CheckErr(err)
	gammaCipher = cryptors.New(key)
}

// getKey obtains the key used to encrypt the file from either:
//  1. The key file named by --keyFile or the 'keyfile' configuration value.
//  2. Arguments from the entered command line (least secure - not recommended)
//  3. The 'GAMMA6_KEY' environment variable (less secure)
//  4. User input from the terminal
// Keys other than a key file are given as 32 hexadecimal digits.
func getKey(args []string) (cryptors.Key, error) {
	if kf := viper.GetString("keyfile"); kf != "" {
		b, err := os.ReadFile(kf)
		if err != nil {
			return cryptors.Key{}, err
		}
		return cryptors.KeyFromBytes(b)
	}

	var secret string
	if len(args) != 0 {
		secret = strings.Join(args, "")
	} else if viper.IsSet(keyEnvName) {
		secret = viper.GetString(keyEnvName)
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Enter the key (32 hex digits): ")
		byteSecret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr, "")
		if err != nil {
			return cryptors.Key{}, err
		}
		secret = string(byteSecret)
	}

	if len(secret) == 0 {
		return cryptors.Key{}, errNoKey
	}

	return cryptors.ParseKey(secret)
}

/*
	getInputAndOutputFiles will return the input and output files to use while
	encrypting/decrypting data.  If input and/or output files names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles(encrypt bool) (*os.File, *os.File) {
	var fin *os.File
	var err error

	if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 {
		if outputFileName == "-" {
			fout = os.Stdout
		} else {
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		}
	} else if len(inputFileName) == 0 || inputFileName == "-" {
		fout = os.Stdout
	} else if encrypt {
		outputFileName = inputFileName + gamma6Suffix
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else if strings.HasSuffix(inputFileName, gamma6Suffix) {
		outputFileName = strings.TrimSuffix(inputFileName, gamma6Suffix)
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		fout = os.Stdout
	}

	return fin, fout
}

// headerFileName returns the name recorded in an encrypted file's header,
// stripped of any directory so it is created in the current directory.  Names
// that do not leave a file name behind yield "".
func headerFileName(name string) string {
	if len(name) == 0 {
		return ""
	}

	base := filepath.Base(name)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return ""
	}

	return base
}

// checkError checks for errors that are not io.EOF and io.ErrUnexpectedEOF.
func checkError(e error) {
	if e != nil && e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}
