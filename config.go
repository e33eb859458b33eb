package shred

import (
	"fmt"
	"strings"

	"github.com/segmentio/shred/compress"
)

const (
	defaultPageBufferSize = 1024 * 1024
)

// DefaultReaderConfig returns a new ReaderConfig with default values.
func DefaultReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		PageBufferSize: defaultPageBufferSize,
	}
}

// DefaultWriterConfig returns a new WriterConfig with default values.
func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		PageBufferSize: defaultPageBufferSize,
		Compression:    &Uncompressed,
	}
}

// NewReaderConfig constructs a reader configuration from the given list of
// options, validating it before returning.
func NewReaderConfig(options ...ReaderOption) (*ReaderConfig, error) {
	config := DefaultReaderConfig()
	config.Apply(options...)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// NewWriterConfig constructs a writer configuration from the given list of
// options, validating it before returning.
func NewWriterConfig(options ...WriterOption) (*WriterConfig, error) {
	config := DefaultWriterConfig()
	config.Apply(options...)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// The ReaderConfig type carries configuration options for readers of
// shredded files.
//
// ReaderConfig implements the ReaderOption interface so it can be used
// directly as argument to the OpenFile function when needed, for example:
//
//	file, err := shred.OpenFile(reader, size, &shred.ReaderConfig{
//		PageBufferSize: 8192,
//	})
//
type ReaderConfig struct {
	PageBufferSize int
}

// Apply applies the given list of options to c.
func (c *ReaderConfig) Apply(options ...ReaderOption) {
	for _, opt := range options {
		opt.ConfigureReader(c)
	}
}

// ConfigureReader applies configuration options from c to config.
func (c *ReaderConfig) ConfigureReader(config *ReaderConfig) {
	c.Configure(config)
}

// Configure applies configuration options from c to config.
func (c *ReaderConfig) Configure(config *ReaderConfig) {
	*config = ReaderConfig{
		PageBufferSize: coalesceInt(c.PageBufferSize, config.PageBufferSize),
	}
}

// Validate returns a non-nil error if the configuration of c is invalid.
func (c *ReaderConfig) Validate() error {
	const baseName = "shred.(*ReaderConfig)."
	return errorInvalidConfiguration(
		validatePositiveInt(baseName+"PageBufferSize", c.PageBufferSize),
	)
}

// The WriterConfig type carries configuration options for writers of
// shredded files.
//
// WriterConfig implements the WriterOption interface so it can be used
// directly as argument to the NewWriter function when needed, for example:
//
//	writer := shred.NewWriter(output, &shred.WriterConfig{
//		CreatedBy: "my test program",
//	})
//
type WriterConfig struct {
	CreatedBy        string
	PageBufferSize   int
	Compression      compress.Codec
	KeyValueMetadata map[string]string
}

// Apply applies the given list of options to c.
func (c *WriterConfig) Apply(options ...WriterOption) {
	for _, opt := range options {
		opt.ConfigureWriter(c)
	}
}

// ConfigureWriter applies configuration options from c to config.
func (c *WriterConfig) ConfigureWriter(config *WriterConfig) {
	c.Configure(config)
}

// Configure applies configuration options from c to config.
func (c *WriterConfig) Configure(config *WriterConfig) {
	keyValueMetadata := config.KeyValueMetadata
	if len(c.KeyValueMetadata) > 0 {
		if keyValueMetadata == nil {
			keyValueMetadata = make(map[string]string, len(c.KeyValueMetadata))
		}
		for k, v := range c.KeyValueMetadata {
			keyValueMetadata[k] = v
		}
	}
	*config = WriterConfig{
		CreatedBy:        coalesceString(c.CreatedBy, config.CreatedBy),
		PageBufferSize:   coalesceInt(c.PageBufferSize, config.PageBufferSize),
		Compression:      coalesceCompression(c.Compression, config.Compression),
		KeyValueMetadata: keyValueMetadata,
	}
}

// Validate returns a non-nil error if the configuration of c is invalid.
func (c *WriterConfig) Validate() error {
	const baseName = "shred.(*WriterConfig)."
	return errorInvalidConfiguration(
		validatePositiveInt(baseName+"PageBufferSize", c.PageBufferSize),
		validateNotNil(baseName+"Compression", c.Compression),
	)
}

// ReaderOption is an interface implemented by types that carry configuration
// options for readers of shredded files.
type ReaderOption interface {
	ConfigureReader(*ReaderConfig)
}

// WriterOption is an interface implemented by types that carry configuration
// options for writers of shredded files.
type WriterOption interface {
	ConfigureWriter(*WriterConfig)
}

// PageBufferSize configures the size of the in-memory buffers where pages
// are staged before encoding and after decoding.
//
// Note that the page buffer size refers to the in-memory buffers where pages
// are generated, not the size of pages after encoding and compression.
//
// Defaults to 1 MiB.
type PageBufferSize int

func (size PageBufferSize) ConfigureReader(config *ReaderConfig) { config.PageBufferSize = int(size) }
func (size PageBufferSize) ConfigureWriter(config *WriterConfig) { config.PageBufferSize = int(size) }

// CreatedBy creates a configuration option which sets the name of the
// application that created a file.
//
// By default, this information is omitted.
func CreatedBy(createdBy string) WriterOption {
	return writerOption(func(config *WriterConfig) { config.CreatedBy = createdBy })
}

// Compression creates a configuration option which sets the compression
// codec applied to page data.
//
// Defaults to no compression.
func Compression(codec compress.Codec) WriterOption {
	return writerOption(func(config *WriterConfig) { config.Compression = codec })
}

// KeyValueMetadata creates a configuration option which adds a key/value
// entry to the application-defined metadata written in file footers.
func KeyValueMetadata(key, value string) WriterOption {
	return writerOption(func(config *WriterConfig) {
		if config.KeyValueMetadata == nil {
			config.KeyValueMetadata = map[string]string{key: value}
		} else {
			config.KeyValueMetadata[key] = value
		}
	})
}

type writerOption func(*WriterConfig)

func (opt writerOption) ConfigureWriter(config *WriterConfig) { opt(config) }

func coalesceInt(i1, i2 int) int {
	if i1 != 0 {
		return i1
	}
	return i2
}

func coalesceString(s1, s2 string) string {
	if s1 != "" {
		return s1
	}
	return s2
}

func coalesceCompression(c1, c2 compress.Codec) compress.Codec {
	if c1 != nil {
		return c1
	}
	return c2
}

func validatePositiveInt(optionName string, optionValue int) error {
	if optionValue > 0 {
		return nil
	}
	return errorInvalidOptionValue(optionName, optionValue)
}

func validateNotNil(optionName string, optionValue interface{}) error {
	if optionValue != nil {
		return nil
	}
	return errorInvalidOptionValue(optionName, optionValue)
}

func errorInvalidOptionValue(optionName string, optionValue interface{}) error {
	return fmt.Errorf("invalid option value: %s: %v: %w", optionName, optionValue, ErrInvalidArgument)
}

func errorInvalidConfiguration(reasons ...error) error {
	var err *invalidConfiguration

	for _, reason := range reasons {
		if reason != nil {
			if err == nil {
				err = new(invalidConfiguration)
			}
			err.reasons = append(err.reasons, reason)
		}
	}

	if err != nil {
		return err
	}

	return nil
}

type invalidConfiguration struct {
	reasons []error
}

func (err *invalidConfiguration) Error() string {
	errorMessage := new(strings.Builder)
	for _, reason := range err.reasons {
		errorMessage.WriteString(reason.Error())
		errorMessage.WriteString("\n")
	}
	errorString := errorMessage.String()
	if errorString != "" {
		errorString = errorString[:len(errorString)-1]
	}
	return errorString
}

func (err *invalidConfiguration) Unwrap() error { return ErrInvalidArgument }
