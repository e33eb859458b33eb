package shred_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/segmentio/shred"
)

func TestDefaultWriterConfig(t *testing.T) {
	config, err := shred.NewWriterConfig()
	if err != nil {
		t.Fatal(err)
	}

	if config.PageBufferSize != 1024*1024 {
		t.Errorf("page buffer size mismatch: want=%d got=%d", 1024*1024, config.PageBufferSize)
	}
	if config.Compression != &shred.Uncompressed {
		t.Errorf("compression mismatch: want=%v got=%v", &shred.Uncompressed, config.Compression)
	}
	if config.CreatedBy != "" {
		t.Errorf("created by mismatch: want=%q got=%q", "", config.CreatedBy)
	}
	if config.KeyValueMetadata != nil {
		t.Errorf("expected no key/value metadata but got %v", config.KeyValueMetadata)
	}
}

func TestWriterOptions(t *testing.T) {
	config, err := shred.NewWriterConfig(
		shred.CreatedBy("unit test"),
		shred.PageBufferSize(4096),
		shred.Compression(&shred.Snappy),
		shred.KeyValueMetadata("language", "go"),
		shred.KeyValueMetadata("purpose", "test"),
	)
	if err != nil {
		t.Fatal(err)
	}

	if config.CreatedBy != "unit test" {
		t.Errorf("created by mismatch: want=%q got=%q", "unit test", config.CreatedBy)
	}
	if config.PageBufferSize != 4096 {
		t.Errorf("page buffer size mismatch: want=%d got=%d", 4096, config.PageBufferSize)
	}
	if config.Compression != &shred.Snappy {
		t.Errorf("compression mismatch: want=%v got=%v", &shred.Snappy, config.Compression)
	}
	want := map[string]string{"language": "go", "purpose": "test"}
	if !reflect.DeepEqual(config.KeyValueMetadata, want) {
		t.Errorf("key/value metadata mismatch: want=%v got=%v", want, config.KeyValueMetadata)
	}
}

func TestWriterConfigAsOption(t *testing.T) {
	base := &shred.WriterConfig{
		CreatedBy:        "app",
		KeyValueMetadata: map[string]string{"k": "v"},
	}

	config, err := shred.NewWriterConfig(base, shred.PageBufferSize(8192))
	if err != nil {
		t.Fatal(err)
	}

	if config.CreatedBy != "app" {
		t.Errorf("created by mismatch: want=%q got=%q", "app", config.CreatedBy)
	}
	if config.PageBufferSize != 8192 {
		t.Errorf("page buffer size mismatch: want=%d got=%d", 8192, config.PageBufferSize)
	}
	if config.Compression != &shred.Uncompressed {
		t.Errorf("compression mismatch: want=%v got=%v", &shred.Uncompressed, config.Compression)
	}
	if value := config.KeyValueMetadata["k"]; value != "v" {
		t.Errorf("key/value metadata mismatch: want=%q got=%q", "v", value)
	}
}

func TestKeyValueMetadataOverride(t *testing.T) {
	config, err := shred.NewWriterConfig(
		shred.KeyValueMetadata("k", "1"),
		shred.KeyValueMetadata("k", "2"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if value := config.KeyValueMetadata["k"]; value != "2" {
		t.Errorf("key/value metadata mismatch: want=%q got=%q", "2", value)
	}
}

func TestWriterConfigValidate(t *testing.T) {
	t.Run("negative page buffer size", func(t *testing.T) {
		_, err := shred.NewWriterConfig(shred.PageBufferSize(-1))
		if !errors.Is(err, shred.ErrInvalidArgument) {
			t.Errorf("error mismatch: want=%v got=%v", shred.ErrInvalidArgument, err)
		}
	})

	t.Run("nil compression", func(t *testing.T) {
		config := &shred.WriterConfig{PageBufferSize: 1024}
		if err := config.Validate(); !errors.Is(err, shred.ErrInvalidArgument) {
			t.Errorf("error mismatch: want=%v got=%v", shred.ErrInvalidArgument, err)
		}
	})

	t.Run("all reasons are reported", func(t *testing.T) {
		config := &shred.WriterConfig{}
		err := config.Validate()
		if err == nil {
			t.Fatal("expected the empty configuration to be invalid")
		}
		message := err.Error()
		for _, option := range []string{"PageBufferSize", "Compression"} {
			if !strings.Contains(message, option) {
				t.Errorf("error message does not mention %s: %q", option, message)
			}
		}
	})
}

func TestReaderConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config, err := shred.NewReaderConfig()
		if err != nil {
			t.Fatal(err)
		}
		if config.PageBufferSize != 1024*1024 {
			t.Errorf("page buffer size mismatch: want=%d got=%d", 1024*1024, config.PageBufferSize)
		}
	})

	t.Run("page buffer size option", func(t *testing.T) {
		config, err := shred.NewReaderConfig(shred.PageBufferSize(512))
		if err != nil {
			t.Fatal(err)
		}
		if config.PageBufferSize != 512 {
			t.Errorf("page buffer size mismatch: want=%d got=%d", 512, config.PageBufferSize)
		}
	})

	t.Run("config as option", func(t *testing.T) {
		config, err := shred.NewReaderConfig(&shred.ReaderConfig{PageBufferSize: 256})
		if err != nil {
			t.Fatal(err)
		}
		if config.PageBufferSize != 256 {
			t.Errorf("page buffer size mismatch: want=%d got=%d", 256, config.PageBufferSize)
		}
	})

	t.Run("invalid page buffer size", func(t *testing.T) {
		_, err := shred.NewReaderConfig(shred.PageBufferSize(0))
		if !errors.Is(err, shred.ErrInvalidArgument) {
			t.Errorf("error mismatch: want=%v got=%v", shred.ErrInvalidArgument, err)
		}
	})
}
