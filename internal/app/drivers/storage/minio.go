package storage

import (
	"context"
	"fmt"
	"log"

	"hims-service/internal/app/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinio holds promissory evidence images. The evidence bucket is created
// at boot so uploads never race bucket provisioning.
func NewMinio(driverConfig *config.DriverConfig, evidenceBucket string) *minio.Client {
	endPoint := fmt.Sprintf("%s:%s", driverConfig.Minio.Host, driverConfig.Minio.Port)
	minioClient, err := minio.New(endPoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Minio Client: %s", err.Error())
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, evidenceBucket)
	if err != nil {
		log.Fatalf("Failed to check evidence bucket: %s", err.Error())
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, evidenceBucket, minio.MakeBucketOptions{}); err != nil {
			log.Fatalf("Failed to create evidence bucket: %s", err.Error())
		}
	}

	log.Println("Successfully connected to minio")
	return minioClient
}
