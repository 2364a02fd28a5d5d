package service

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plateshare/backend/config"
)

// ImageService stores uploaded recipe images in S3.
type ImageService struct {
	s3Config *config.S3Config
	logger   *zap.Logger
}

func NewImageService(s3Config *config.S3Config, logger *zap.Logger) *ImageService {
	return &ImageService{
		s3Config: s3Config,
		logger:   logger,
	}
}

// UploadRecipeImage stores the image under a recipe-scoped key and
// returns its public URL. The file extension is kept from the original
// name so the content type stays honest.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, data []byte, origName, contentType string) (string, error) {
	key := fmt.Sprintf("recipe-images/%s/%s%s", recipeID, uuid.New().String(), path.Ext(origName))

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	s.logger.Info("uploaded recipe image", zap.String("recipe_id", recipeID.String()), zap.String("url", publicURL))

	return publicURL, nil
}
