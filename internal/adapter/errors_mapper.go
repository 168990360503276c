package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/minio/minio-go/v7"
	"github.com/studio-b12/gowebdav"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return mapStatus(resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
}

func mapStatus(status int, body string) error {
	if len(body) > 512 {
		body = body[:512]
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound, http.StatusGone:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrBadGateway, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(status)
		}
		return fmt.Errorf("http %d: %s", status, body)
	}
}

// mapS3Error translates minio error responses to the package sentinels.
func mapS3Error(err error) error {
	if err == nil {
		return nil
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchUpload":
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Message)
	case "NoSuchBucket":
		return fmt.Errorf("%w: bucket does not exist: %s", ErrBadRequest, resp.Message)
	case "AccessDenied", "AllAccessDisabled":
		return fmt.Errorf("%w: %s", ErrForbidden, resp.Message)
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "InvalidToken":
		return fmt.Errorf("%w: %s", ErrUnauthorized, resp.Message)
	}

	if resp.StatusCode != 0 {
		return mapStatus(resp.StatusCode, resp.Message)
	}
	return err
}

// mapWebDAVError translates the status carried by gowebdav path errors.
func mapWebDAVError(err error) error {
	var se gowebdav.StatusError
	if errors.As(err, &se) {
		return mapStatus(se.Status, err.Error())
	}
	return fmt.Errorf("webdav request: %w", err)
}

// mapFSError translates local file system errors.
func mapFSError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	default:
		return err
	}
}
