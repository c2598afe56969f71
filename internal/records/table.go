package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Columns lists the header names every table must carry.
var Columns = []string{
	"install_time",
	"build_time",
	"deps_with_duplicates",
	"deps_without_duplicates",
	"build_size",
	"chromium",
	"firefox",
	"webkit",
}

const tableDelimiter = ';'

// ReadTable reads one semicolon-delimited table with a header row and stamps
// every sample with index.
func ReadTable(path string, index int) ([]Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	defer file.Close()

	samples, err := DecodeTable(file, index)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	return samples, nil
}

// DecodeTable decodes the rows of r. Empty cells and the literals "none" and
// "null" decode as 0, which downstream code treats as "not measured".
func DecodeTable(r io.Reader, index int) ([]Sample, error) {
	reader := csv.NewReader(r)
	reader.Comma = tableDelimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, fmt.Errorf("header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var samples []Sample
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = strings.TrimSpace(row[i])
			}
		}

		sample, err := decodeSample(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sample.Index = index
		samples = append(samples, sample)
	}
	return samples, nil
}

func decodeSample(fields map[string]string) (Sample, error) {
	var sample Sample
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncKind(missingAsBlank),
			mapstructure.DecodeHookFuncKind(rejectNonFinite),
		),
		WeaklyTypedInput: true,
		Result:           &sample,
	})
	if err != nil {
		return Sample{}, err
	}
	if err := decoder.Decode(fields); err != nil {
		return Sample{}, err
	}
	return sample, nil
}

// missingAsBlank rewrites textual "no value" markers to the empty string so
// weak decoding turns them into 0.
func missingAsBlank(from, to reflect.Kind, data any) (any, error) {
	if from != reflect.String || to != reflect.Float64 {
		return data, nil
	}
	switch strings.ToLower(data.(string)) {
	case "none", "null", "n/a", "-":
		return "", nil
	}
	return data, nil
}

// rejectNonFinite refuses NaN and infinite cells, which strconv.ParseFloat
// would otherwise accept.
func rejectNonFinite(from, to reflect.Kind, data any) (any, error) {
	if from != reflect.String || to != reflect.Float64 {
		return data, nil
	}
	v, err := strconv.ParseFloat(data.(string), 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return nil, fmt.Errorf("non-finite value %q", data)
	}
	return data, nil
}

func checkHeader(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}
	var missing []string
	for _, col := range Columns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("header missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
