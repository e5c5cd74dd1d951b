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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/bgallie/gamma6/cryptors"
)

const (
	gamma6ApiLevel = 1
	headerTag      = "+G6"
	pemType        = "GAMMA6 Encrypted Message"
)

var (
	errHeader          = errors.New("not a gamma6 encrypted file")
	errShortCiphertext = errors.New("ciphertext is shorter than the recorded file size")
	errLongCiphertext  = errors.New("ciphertext is longer than the recorded file size")
	errBlockCount      = errors.New("block count does not match the file size")
	errFileName        = errors.New("file name may not contain line breaks")
)

// streamOptions describes how an encrypted file is laid out.  It is written
// to, and read back from, the file's header.
type streamOptions struct {
	apiLevel    int
	fileName    string
	useASCII85  bool
	usePem      bool
	compression bool
	fileSize    int64
}

// blocksFor returns the number of cipher blocks needed to hold n bytes.
func blocksFor(n int64) uint64 {
	return uint64((n + cryptors.BlockBytes - 1) / cryptors.BlockBytes)
}

// headerLine returns the header written before binary and ASCII85 output:
//	+G6|apiLevel|fileName|a or b|compression
// The file name is the only field that may itself contain a '|'.
func headerLine(opts streamOptions) string {
	enc := "b"
	if opts.useASCII85 {
		enc = "a"
	}

	return fmt.Sprintf("%s|%d|%s|%s|%v\n", headerTag, gamma6ApiLevel, opts.fileName, enc, opts.compression)
}

func parseHeaderLine(line string) (streamOptions, error) {
	var opts streamOptions
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "|")
	if len(fields) < 5 || fields[0] != headerTag {
		return opts, errHeader
	}
	last := len(fields) - 2

	lvl, err := strconv.Atoi(fields[1])
	if err != nil {
		return opts, fmt.Errorf("%w: bad api level [%s]", errHeader, fields[1])
	}

	opts.apiLevel = lvl
	opts.fileName = strings.Join(fields[2:last], "|")
	switch fields[last] {
	case "a":
		opts.useASCII85 = true
	case "b":
	default:
		return opts, fmt.Errorf("%w: unknown encoding [%s]", errHeader, fields[last])
	}
	opts.compression = fields[last+1] == "true"
	return opts, nil
}

func parseFileSize(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad file size [%s]", errHeader, strings.TrimSpace(s))
	}

	return n, nil
}

// shutdown stops a cipher machine by processing a CypherBlock with a zero
// value length field.
func shutdown(left, right chan cryptors.CypherBlock) {
	var blk cryptors.CypherBlock
	left <- blk
	<-right
}

// toBinaryHelper provides the means to output pure binary encrypted
// data along with the number of bytes encrypted.  The byte count comes first,
// on a line of its own, so the ciphertext is held in a temporary file until
// the input is exhausted.  The entire last block of encrypted data is output
// even if the plaintext does not fill it.
func toBinaryHelper(rdr io.Reader, left, right chan cryptors.CypherBlock, cntr *cryptors.Counter) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()

	go func() {
		var err error
		defer func() {
			shutdown(left, right)
			rWrtr.CloseWithError(err)
		}()

		tmpFile, err := os.CreateTemp("", "gamma6*")
		if err != nil {
			return
		}
		defer os.Remove(tmpFile.Name())
		defer tmpFile.Close()

		var bytesWritten int64
		for {
			var blk cryptors.CypherBlock
			cnt, rerr := io.ReadFull(rdr, blk.CypherBlock[:])
			if cnt > 0 {
				blk.Length = int8(cnt)
				left <- blk
				blk = <-right
				if _, err = tmpFile.Write(blk.CypherBlock[:]); err != nil {
					return
				}
				bytesWritten += int64(cnt)
			}
			if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
				break
			}
			if rerr != nil {
				err = rerr
				return
			}
		}

		if cntr.Count() != blocksFor(bytesWritten) {
			err = fmt.Errorf("%w: %d blocks for %d bytes", errBlockCount, cntr.Count(), bytesWritten)
			return
		}
		if _, err = tmpFile.Seek(0, io.SeekStart); err != nil {
			return
		}
		if _, err = fmt.Fprintf(rWrtr, "%d\n", bytesWritten); err != nil {
			return
		}
		_, err = io.Copy(rWrtr, tmpFile)
	}()

	return rRdr
}

// fromBinaryHelper decrypts whole blocks read from rdr and writes at most
// fileSize bytes of plaintext to the returned PipeReader.  The number of
// blocks counted by cntr must be exactly what fileSize needs.
func fromBinaryHelper(rdr io.Reader, left, right chan cryptors.CypherBlock, cntr *cryptors.Counter, fileSize int64) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()

	go func() {
		var err error
		defer func() {
			shutdown(left, right)
			rWrtr.CloseWithError(err)
		}()

		bytesRemaining := fileSize
		for {
			var blk cryptors.CypherBlock
			cnt, rerr := io.ReadFull(rdr, blk.CypherBlock[:])
			if rerr == io.EOF {
				break
			}
			if rerr == io.ErrUnexpectedEOF {
				err = fmt.Errorf("%w: %d trailing bytes", cryptors.ErrCiphertextLength, cnt)
				return
			}
			if rerr != nil {
				err = rerr
				return
			}

			blk.Length = cryptors.BlockBytes
			left <- blk
			blk = <-right
			n := int64(blk.Length)
			if bytesRemaining < n {
				n = bytesRemaining
			}
			if n > 0 {
				if _, err = rWrtr.Write(blk.CypherBlock[:n]); err != nil {
					return
				}
			}
			bytesRemaining -= n
		}

		switch want := blocksFor(fileSize); {
		case cntr.Count() < want:
			err = errShortCiphertext
		case cntr.Count() > want:
			err = fmt.Errorf("%w: %d blocks for %d bytes", errLongCiphertext, cntr.Count(), fileSize)
		}
	}()

	return rRdr
}

// encryptStream encrypts fin with ecm and writes the header and ciphertext to
// fout.
func encryptStream(ecm cryptors.Crypter, fin io.Reader, fout io.Writer, opts streamOptions) error {
	if strings.ContainsAny(opts.fileName, "\r\n") {
		return fmt.Errorf("%w: %q", errFileName, opts.fileName)
	}

	var src io.Reader = fin
	if opts.compression {
		src = flate.ToFlate(fin)
	}

	var cntr cryptors.Counter
	left, right := cryptors.CreateEncryptMachine(ecm, &cntr)
	encIn := toBinaryHelper(src, left, right, &cntr)
	defer encIn.Close()
	bRdr := bufio.NewReader(encIn)
	line, err := bRdr.ReadString('\n')
	if err != nil {
		return err
	}

	if opts.usePem {
		var blck pem.Block
		blck.Headers = make(map[string]string)
		blck.Type = pemType
		blck.Headers["ApiLevel"] = strconv.Itoa(gamma6ApiLevel)
		if len(opts.fileName) > 0 {
			blck.Headers["FileName"] = opts.fileName
		}
		blck.Headers["Compression"] = fmt.Sprintf("%v", opts.compression)
		blck.Headers["FileSize"] = strings.TrimSuffix(line, "\n")
		_, err = io.Copy(fout, pem.ToPem(bRdr, blck))
		return err
	}

	if _, err = io.WriteString(fout, headerLine(opts)); err != nil {
		return err
	}
	if _, err = io.WriteString(fout, line); err != nil {
		return err
	}

	if opts.useASCII85 {
		_, err = io.Copy(fout, lines.SplitToLines(ascii85.ToASCII85(bRdr)))
	} else {
		_, err = io.Copy(fout, bRdr)
	}

	return err
}

// decryptStream reads the header from fin and returns a reader producing the
// decrypted plaintext together with the options found in the header.
func decryptStream(ecm cryptors.Crypter, fin io.Reader) (io.Reader, streamOptions, error) {
	var opts streamOptions
	var aRdr io.Reader
	bRdr := bufio.NewReader(fin)
	b, err := bRdr.Peek(5)
	if err != nil {
		return nil, opts, fmt.Errorf("%w: %v", errHeader, err)
	}

	if string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		fal, exists := blck.Headers["ApiLevel"]
		if !exists {
			fal = "-1"
		}
		opts.apiLevel, _ = strconv.Atoi(fal)
		opts.usePem = true
		opts.fileName = blck.Headers["FileName"]
		opts.compression = blck.Headers["Compression"] == "true"
		if opts.fileSize, err = parseFileSize(blck.Headers["FileSize"]); err != nil {
			return nil, opts, err
		}
		aRdr = pRdr
	} else {
		line, err := bRdr.ReadString('\n')
		if err != nil {
			return nil, opts, fmt.Errorf("%w: %v", errHeader, err)
		}
		if opts, err = parseHeaderLine(line); err != nil {
			return nil, opts, err
		}
		line, err = bRdr.ReadString('\n')
		if err != nil {
			return nil, opts, fmt.Errorf("%w: missing file size", errHeader)
		}
		if opts.fileSize, err = parseFileSize(line); err != nil {
			return nil, opts, err
		}
		if opts.useASCII85 {
			aRdr = ascii85.FromASCII85(lines.CombineLines(bRdr))
		} else {
			aRdr = bRdr
		}
	}

	if opts.apiLevel != gamma6ApiLevel {
		return nil, opts, fmt.Errorf("API Level mismatch. FileApiLevel: %d, Gamma6ApiLevel: %d", opts.apiLevel, gamma6ApiLevel)
	}

	var cntr cryptors.Counter
	left, right := cryptors.CreateDecryptMachine(ecm, &cntr)
	var flateRdr *io.PipeReader = fromBinaryHelper(aRdr, left, right, &cntr, opts.fileSize)
	if opts.compression {
		flateRdr = flate.FromFlate(flateRdr)
	}

	return flateRdr, opts, nil
}
