package logsources

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	outcomeOpened     = "opened"
	outcomeOpenFailed = "open_failed"
	outcomeReadFailed = "read_failed"
)

// LogFile reads a plain or gzip-compressed log file line by line. Invalid UTF-8 is
// replaced with U+FFFD instead of failing the read.
type LogFile struct {
	path   string
	file   *os.File
	gz     *gzip.Reader
	reader *bufio.Reader
}

// Open opens path, decompressing it when the name ends in ".gz".
func Open(path string) (*LogFile, error) {
	file, err := os.Open(path)
	if err != nil {
		metricLogFilesTotal.WithLabelValues(outcomeOpenFailed).Inc()
		return nil, err
	}

	logFile := &LogFile{path: path, file: file}
	var src io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			metricLogFilesTotal.WithLabelValues(outcomeOpenFailed).Inc()
			return nil, err
		}
		logFile.gz = gz
		src = gz
	}

	logFile.reader = bufio.NewReaderSize(transform.NewReader(src, unicode.UTF8.NewDecoder()), 64*1024)
	metricLogFilesTotal.WithLabelValues(outcomeOpened).Inc()
	return logFile, nil
}

// Path returns the file path.
func (f *LogFile) Path() string {
	return f.path
}

// ReadLine returns the next line without its terminator. It returns io.EOF once the
// file is exhausted; any other error means the rest of the file is unreadable.
func (f *LogFile) ReadLine() (string, error) {
	line, err := f.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				metricLogLinesReadTotal.Inc()
				return strings.TrimRight(line, "\r\n"), nil
			}
			return "", io.EOF
		}
		metricLogFilesTotal.WithLabelValues(outcomeReadFailed).Inc()
		return "", err
	}
	metricLogLinesReadTotal.Inc()
	return strings.TrimRight(line, "\r\n"), nil
}

func (f *LogFile) Close() error {
	var gzErr error
	if f.gz != nil {
		gzErr = f.gz.Close()
	}
	return errors.Join(gzErr, f.file.Close())
}
