package files

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/farxc/dfc_dashboard/internal/logger"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
)

const (
	EncodingWindows1252 = "windows1252"
	EncodingLatin1      = "latin1"
	EncodingUTF8        = "utf8"
)

// Decoder wraps r so it yields UTF-8. ERP exports default to Windows-1252.
func Decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "-", "")) {
	case "", EncodingWindows1252, "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	case EncodingLatin1, "iso88591":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case EncodingUTF8:
		return r, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", encoding)
}

// ReadDataFrame parses a ';' separated export. Every column is read as a
// string: amounts use Brazilian separators and plan codes look like numbers.
func ReadDataFrame(r io.Reader, encoding string) (dataframe.DataFrame, error) {
	decoded, err := Decoder(r, encoding)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df := dataframe.ReadCSV(decoded,
		dataframe.WithDelimiter(';'),
		dataframe.WithLazyQuotes(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{""}),
	)
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, err
	}
	// If dataframe is empty return
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataframe is empty")
	}
	return df, nil
}

func OpenFileAndDecode(path, encoding string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %v", path, err)
	}
	defer file.Close()

	df, err := ReadDataFrame(file, encoding)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return df, nil
}

// UnzipCSV extracts the .csv members of zipPath into destDir and returns
// their paths in archive order.
func UnzipCSV(zipPath, destDir string, appLogger *logger.Logger) ([]string, error) {
	const component = "Unzipper"

	appLogger.Debug(component, "Starting extraction: zipPath=%s destDir=%s", zipPath, destDir)

	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip file %s: %w", zipPath, err)
	}
	defer r.Close()

	var extracted []string
	skippedCount := 0

	for _, f := range r.File {
		filePath := filepath.Join(destDir, f.Name)

		if !strings.HasPrefix(filePath, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return nil, fmt.Errorf("invalid file path detected (possible zip slip): %s", f.Name)
		}

		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".csv") {
			skippedCount++
			appLogger.Debug(component, "Skipping non-csv entry: file=%s", f.Name)
			continue
		}

		if err := extractFile(f, filePath); err != nil {
			return nil, err
		}
		extracted = append(extracted, filePath)
	}

	appLogger.Info(component, "Extraction completed: destDir=%s extractedFiles=%d skippedFiles=%d", destDir, len(extracted), skippedCount)
	return extracted, nil
}

func extractFile(f *zip.File, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}

	destFile, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", filePath, err)
	}
	defer destFile.Close()

	zippedFile, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open zipped file %s: %w", f.Name, err)
	}
	defer zippedFile.Close()

	if _, err := io.Copy(destFile, zippedFile); err != nil {
		return fmt.Errorf("failed to extract file %s: %w", f.Name, err)
	}
	return nil
}
