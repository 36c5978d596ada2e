package s3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"cow-catalog/internal/ports/kv/kvtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 implementa GET/PUT/DELETE path-style en memoria.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// /<bucket>/<key>
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") {
			body = decodeAWSChunked(body)
		}
		f.objects[key] = body
		return respond(http.StatusOK, nil), nil
	case http.MethodGet:
		b, ok := f.objects[key]
		if !ok {
			return respond(http.StatusNotFound, []byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)), nil
		}
		return respond(http.StatusOK, b), nil
	case http.MethodDelete:
		delete(f.objects, key)
		return respond(http.StatusNoContent, nil), nil
	}
	return respond(http.StatusNotImplemented, nil), nil
}

func respond(status int, body []byte) *http.Response {
	h := http.Header{}
	h.Set("Content-Length", strconv.Itoa(len(body)))
	if len(body) > 0 && body[0] == '<' {
		h.Set("Content-Type", "application/xml")
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(body)), Header: h, ContentLength: int64(len(body))}
}

// decodeAWSChunked: <hex>[;ext]\r\n<data>\r\n ... 0\r\n[trailers]\r\n
func decodeAWSChunked(b []byte) []byte {
	var out []byte
	rest := b
	for {
		i := bytes.Index(rest, []byte("\r\n"))
		if i < 0 {
			return out
		}
		sizeField := string(rest[:i])
		if j := strings.IndexByte(sizeField, ';'); j >= 0 {
			sizeField = sizeField[:j]
		}
		n, err := strconv.ParseInt(strings.TrimSpace(sizeField), 16, 64)
		if err != nil || n == 0 {
			return out
		}
		rest = rest[i+2:]
		if int64(len(rest)) < n {
			return out
		}
		out = append(out, rest[:n]...)
		rest = bytes.TrimPrefix(rest[n:], []byte("\r\n"))
	}
}

func newTestKV(t *testing.T) (*KV, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	return New(client, "herd", "cowcatalog/"), fake
}

func TestKV_Behaviour(t *testing.T) {
	s, _ := newTestKV(t)
	kvtest.Run(t, s)
}

func TestKV_UsesPrefix(t *testing.T) {
	s, fake := newTestKV(t)
	require.NoError(t, s.Set(context.Background(), "@cow_catalog_cows", []byte(`[]`)))

	_, ok := fake.objects["cowcatalog/@cow_catalog_cows"]
	assert.True(t, ok, "objects: %v", fake.objects)
}

func TestOpen_RequiresBucket(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	assert.Error(t, err)
}
