package store

import (
	"encoding/json"
	"log"
	"os"
	"path"
	"savanablu/src/models"

	awslib "savanablu/src/lib/aws"
)

// FileBackend keeps the collection as a JSON array on local disk. When a
// backup bucket is configured, each successful write also ships a snapshot
// to S3 in the background.
type FileBackend struct {
	Path string
}

func NewFileBackend(filepath string) *FileBackend {
	return &FileBackend{Path: filepath}
}

func (f *FileBackend) ReadAll() ([]models.Booking, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []models.Booking{}, nil
	}
	var bookings []models.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (f *FileBackend) WriteAll(bookings []models.Booking) error {
	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(path.Dir(f.Path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(f.Path, data, 0o644); err != nil {
		return err
	}
	if os.Getenv("S3_BACKUP_BUCKET") != "" {
		go func() {
			if err := awslib.S3UploadSnapshot(path.Base(f.Path), f.Path); err != nil {
				log.Printf("[store] snapshot upload failed: %s\n", err.Error())
			}
		}()
	}
	return nil
}
