package facts

import (
	"encoding/json"
	"fmt"
	"os"

	"migraph/internal/errors"
)

// LoadBatch reads a complete facts batch from a JSON file.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.FactsNotFound,
				fmt.Sprintf("facts batch not found at %s", path), err)
		}
		return nil, errors.New(errors.FactsInvalid,
			fmt.Sprintf("failed to read facts batch at %s", path), err)
	}
	return ParseBatch(data)
}

// ParseBatch decodes a facts batch from raw JSON. A batch with no files is
// valid and yields an empty graph downstream.
func ParseBatch(data []byte) (*Batch, error) {
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, errors.New(errors.FactsInvalid, "failed to decode facts batch", err)
	}
	if batch.Files == nil {
		batch.Files = []FileFact{}
	}
	return &batch, nil
}
