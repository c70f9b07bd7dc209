package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	AttachmentDriverFS = "fs"
	AttachmentDriverS3 = "s3"
)

type attachmentEnv struct {
	Driver string `env:"ATTACHMENT_DRIVER" envDefault:"fs"`
	FSRoot string `env:"ATTACHMENT_FS_ROOT" envDefault:"images/uploads"`

	S3Bucket          string `env:"ATTACHMENT_S3_BUCKET"`
	S3Region          string `env:"ATTACHMENT_S3_REGION" envDefault:"us-east-1"`
	S3Prefix          string `env:"ATTACHMENT_S3_PREFIX" envDefault:"uploads"`
	S3Endpoint        string `env:"ATTACHMENT_S3_ENDPOINT"`
	S3AccessKeyID     string `env:"ATTACHMENT_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"ATTACHMENT_S3_SECRET_ACCESS_KEY"`
	S3PathStyle       bool   `env:"ATTACHMENT_S3_PATH_STYLE" envDefault:"false"`
}

type attachment struct {
	raw attachmentEnv
}

func NewAttachmentConfig() (*attachment, error) {
	var raw attachmentEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	switch raw.Driver {
	case AttachmentDriverFS:
	case AttachmentDriverS3:
		if raw.S3Bucket == "" {
			return nil, fmt.Errorf("ATTACHMENT_S3_BUCKET is required for driver %q", raw.Driver)
		}
	default:
		return nil, fmt.Errorf("unsupported ATTACHMENT_DRIVER %q", raw.Driver)
	}

	return &attachment{raw: raw}, nil
}

func (cfg *attachment) Driver() string            { return cfg.raw.Driver }
func (cfg *attachment) FSRoot() string            { return cfg.raw.FSRoot }
func (cfg *attachment) S3Bucket() string          { return cfg.raw.S3Bucket }
func (cfg *attachment) S3Region() string          { return cfg.raw.S3Region }
func (cfg *attachment) S3Prefix() string          { return cfg.raw.S3Prefix }
func (cfg *attachment) S3Endpoint() string        { return cfg.raw.S3Endpoint }
func (cfg *attachment) S3AccessKeyID() string     { return cfg.raw.S3AccessKeyID }
func (cfg *attachment) S3SecretAccessKey() string { return cfg.raw.S3SecretAccessKey }
func (cfg *attachment) S3PathStyle() bool         { return cfg.raw.S3PathStyle }
