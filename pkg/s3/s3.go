package s3

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// ItfS3 stores per-phrase audio clips under <audio-root>/<phrase-id>.mp3.
type ItfS3 interface {
	UploadAudio(phraseID string, data []byte) (string, error)
	DownloadAudio(phraseID string) ([]byte, error)
}

type s3Client struct {
	client     *s3.S3
	session    *session.Session
	bucketName string
	audioRoot  string
}

func New() (ItfS3, error) {
	sess, err := newSession()
	if err != nil {
		return nil, err
	}

	audioRoot := os.Getenv("AWS_AUDIO_ROOT")
	if audioRoot == "" {
		audioRoot = "sounds"
	}

	return &s3Client{
		client:     s3.New(sess),
		session:    sess,
		bucketName: os.Getenv("AWS_BUCKET_NAME"),
		audioRoot:  audioRoot,
	}, nil
}

func (s *s3Client) audioKey(phraseID string) string {
	return path.Join(s.audioRoot, phraseID+".mp3")
}

func (s *s3Client) UploadAudio(phraseID string, data []byte) (string, error) {
	uploader := s3manager.NewUploader(s.session)

	uploadOutput, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.audioKey(phraseID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("audio/mpeg"),
	})
	if err != nil {
		return "", err
	}

	return uploadOutput.Location, nil
}

func (s *s3Client) DownloadAudio(phraseID string) ([]byte, error) {
	out, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.audioKey(phraseID)),
	})
	if err != nil {
		return nil, err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			fmt.Println("Failed to close S3 object body")
		}
	}(out.Body)

	return io.ReadAll(out.Body)
}

func newSession() (*session.Session, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		),
	})
	if err != nil {
		return nil, err
	}

	return sess, nil
}
