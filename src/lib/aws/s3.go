package aws

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func GetS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	svc := s3.NewFromConfig(cfg)
	return svc
}

// S3UploadSnapshot copies a local data file into the backup bucket under the
// given key. Best effort; callers log and move on.
func S3UploadSnapshot(key string, filepath string) error {
	bucket := os.Getenv("S3_BACKUP_BUCKET")
	client := GetS3Client()
	file, err := os.Open(filepath)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return err
	}
	log.Printf("Uploaded snapshot %s to bucket %s\n", key, bucket)
	return nil
}
