package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/prakasautama/procost/internal/entity"
	"github.com/prakasautama/procost/internal/repository"
)

// UploadService 附件服务：对象存MinIO，元数据落库。
// minioClient 为 nil 时只落元数据（测试场景）
type UploadService struct {
	repo        *repository.UploadRepository
	minioClient *minio.Client
	bucket      string
	useSSL      bool
}

func NewUploadService(repo *repository.UploadRepository, minioClient *minio.Client, bucket string, useSSL bool) *UploadService {
	return &UploadService{repo: repo, minioClient: minioClient, bucket: bucket, useSSL: useSSL}
}

// UploadedFile 上传结果，URL 为可公开访问地址
type UploadedFile struct {
	entity.Upload
	URL string `json:"url"`
}

// PublicURL 拼对象的公开访问地址
func (s *UploadService) PublicURL(path string) string {
	if s.minioClient == nil || path == "" {
		return path
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.minioClient.EndpointURL().Host, s.bucket, path)
}

// List 附件列表
func (s *UploadService) List(ctx context.Context, projectID, materialID string) ([]UploadedFile, error) {
	items, err := s.repo.FindAll(ctx, projectID, materialID)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	out := make([]UploadedFile, 0, len(items))
	for _, item := range items {
		out = append(out, UploadedFile{Upload: item, URL: s.PublicURL(item.Path)})
	}
	return out, nil
}

// Upload 存对象并落元数据
func (s *UploadService) Upload(ctx context.Context, projectID, materialID string, statusIndex int, reader io.Reader, filename string, size int64, contentType string) (*UploadedFile, error) {
	if projectID == "" && materialID == "" {
		return nil, validationErrorf("project_id or material_id is required")
	}

	objectName := fmt.Sprintf("uploads/%s/%s%s",
		time.Now().Format("2006/01"), uuid.New().String()[:8], filepath.Ext(filename))

	if s.minioClient != nil {
		_, err := s.minioClient.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return nil, fmt.Errorf("upload file: %w", err)
		}
	}

	upload := &entity.Upload{
		ID:          uuid.New().String()[:32],
		ProjectID:   projectID,
		MaterialID:  materialID,
		Filename:    filename,
		Path:        objectName,
		Size:        size,
		Mime:        contentType,
		StatusIndex: statusIndex,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, upload); err != nil {
		return nil, fmt.Errorf("create upload record: %w", err)
	}

	return &UploadedFile{Upload: *upload, URL: s.PublicURL(objectName)}, nil
}

// Delete 删对象和元数据，附件可独立于宿主删除
func (s *UploadService) Delete(ctx context.Context, id string) error {
	upload, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if s.minioClient != nil {
		if err := s.minioClient.RemoveObject(ctx, s.bucket, upload.Path, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove object: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}
