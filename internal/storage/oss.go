package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/alibaba-cloud-sdk-go/services/sts"
	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/HarmoniqaOrg/PharmOS/config"
)

// OSSStore keeps payloads in an Aliyun OSS bucket under
// models/<model_id>/<version>/model.bin, authenticating with short-lived
// STS credentials per operation.
type OSSStore struct {
	cfg *config.Config
}

func NewOSSStore(cfg *config.Config) *OSSStore {
	return &OSSStore{cfg: cfg}
}

func (s *OSSStore) objectKey(modelID, version string) string {
	return fmt.Sprintf("models/%s/%s/%s", modelID, version, artifactFileName)
}

func (s *OSSStore) bucket() (*oss.Bucket, error) {
	creds, err := s.assumeRole()
	if err != nil {
		return nil, fmt.Errorf("failed to get STS token: %w", err)
	}

	client, err := oss.New(
		s.cfg.OSSEndpoint,
		creds.AccessKeyId,
		creds.AccessKeySecret,
		oss.SecurityToken(creds.SecurityToken),
		oss.Timeout(60, 120),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}
	return client.Bucket(s.cfg.OSSBucketName)
}

func (s *OSSStore) assumeRole() (*sts.Credentials, error) {
	// STS wants the region without the "oss-" prefix
	region := strings.TrimPrefix(s.cfg.OSSRegion, "oss-")

	client, err := sts.NewClientWithAccessKey(region, s.cfg.OSSAccessKeyID, s.cfg.OSSAccessKeySecret)
	if err != nil {
		return nil, err
	}

	request := sts.CreateAssumeRoleRequest()
	request.Scheme = "https"
	request.RoleArn = s.cfg.OSSRoleArn
	request.RoleSessionName = "pharmos-registry-session"
	request.DurationSeconds = "3600"

	response, err := client.AssumeRole(request)
	if err != nil {
		return nil, err
	}
	return &response.Credentials, nil
}

func (s *OSSStore) Put(ctx context.Context, modelID, version string, payload []byte) (string, error) {
	bucket, err := s.bucket()
	if err != nil {
		return "", err
	}

	key := s.objectKey(modelID, version)
	putErr := bucket.PutObject(key, bytes.NewReader(payload))
	if putErr != nil {
		// One retry with fresh credentials, mirroring token-expiry recovery
		bucket, err = s.bucket()
		if err != nil {
			return "", err
		}
		putErr = bucket.PutObject(key, bytes.NewReader(payload))
	}
	if putErr != nil {
		return "", fmt.Errorf("upload failed after retry: %w", putErr)
	}

	return Digest(payload), nil
}

func (s *OSSStore) Get(ctx context.Context, modelID, version string) ([]byte, error) {
	bucket, err := s.bucket()
	if err != nil {
		return nil, err
	}

	body, err := bucket.GetObject(s.objectKey(modelID, version))
	if err != nil {
		var svcErr oss.ServiceError
		if errors.As(err, &svcErr) && svcErr.StatusCode == 404 {
			return nil, fmt.Errorf("%w: %s:%s", ErrArtifactNotFound, modelID, version)
		}
		return nil, fmt.Errorf("failed to fetch artifact: %w", err)
	}
	defer body.Close()

	return io.ReadAll(body)
}

func (s *OSSStore) Delete(ctx context.Context, modelID, version string) error {
	bucket, err := s.bucket()
	if err != nil {
		return err
	}
	// DeleteObject succeeds on a missing key, keeping Delete idempotent
	return bucket.DeleteObject(s.objectKey(modelID, version))
}
