package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ndiougueshop_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadImage pousse une image produit/catégorie vers MinIO et retourne
// le chemin objet stocké en base.
func UploadImage(ctx context.Context, folder string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	ext := filepath.Ext(header.Filename)
	objectName := fmt.Sprintf("%s/%d%s", folder, time.Now().UnixNano(), ext)

	_, err := database.MinIO.PutObject(
		ctx,
		os.Getenv("MINIO_BUCKET"),
		objectName,
		file,
		header.Size,
		minio.PutObjectOptions{ContentType: header.Header.Get("Content-Type")},
	)
	if err != nil {
		return "", err
	}

	return objectName, nil
}

// GenerateSignedURL génère une URL de lecture signée avec expiration
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	bucket := os.Getenv("MINIO_BUCKET")

	// Nettoie une éventuelle URL complète pour ne garder que le chemin objet
	key := objectPath
	if i := strings.Index(key, bucket+"/"); i >= 0 {
		key = key[i+len(bucket)+1:]
	}

	reqParams := make(url.Values)
	presignedURL, err := database.MinIO.PresignedGetObject(ctx, bucket, key, duration, reqParams)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
