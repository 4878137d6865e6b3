// Package codec decodes chat event envelopes delivered by stream transports.
//
// Two wire formats are supported: the JSON envelope the HTTP API accepts and
// a protobuf encoding of the same shape (chat_event.proto). Protobuf payloads
// are decoded dynamically against the embedded descriptor and converted to
// the JSON form, so both formats share one validation path.
package codec

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	FormatJSON     = "json"
	FormatProtobuf = "protobuf"
)

const (
	protoFileName     = "chat_event.proto"
	envelopeFullName  = "affinity.v1.Envelope"
	maxPreviewPayload = 64
)

//go:embed chat_event.proto
var chatEventProto string

// Codec turns a transport payload into a validated event.
type Codec interface {
	Decode(payload []byte) (v1.Event, error)
	Format() string
}

// New returns the codec for format.
func New(ctx context.Context, format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		return JSON{}, nil
	case FormatProtobuf:
		return NewProtobuf(ctx)
	default:
		return nil, fmt.Errorf("unsupported codec format %q", format)
	}
}

// JSON decodes v1.Envelope documents.
type JSON struct{}

func (JSON) Format() string { return FormatJSON }

func (JSON) Decode(payload []byte) (v1.Event, error) {
	var env v1.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode json envelope %q: %w", preview(payload), err)
	}
	return env.Event()
}

// Protobuf decodes affinity.v1.Envelope messages.
type Protobuf struct {
	envelope protoreflect.MessageDescriptor
	toJSON   protojson.MarshalOptions
	fromJSON protojson.UnmarshalOptions
}

// NewProtobuf compiles the embedded envelope descriptor.
func NewProtobuf(ctx context.Context) (*Protobuf, error) {
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&embeddedResolver{
			fileName: protoFileName,
			content:  chatEventProto,
		}),
		SourceInfoMode: protocompile.SourceInfoNone,
	}

	files, err := compiler.Compile(ctx, protoFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", protoFileName, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files compiled")
	}

	desc := files[0].Messages().ByName(protoreflect.FullName(envelopeFullName).Name())
	if desc == nil {
		return nil, fmt.Errorf("%s not found in %s", envelopeFullName, protoFileName)
	}

	return &Protobuf{
		envelope: desc,
		toJSON:   protojson.MarshalOptions{UseProtoNames: true},
		fromJSON: protojson.UnmarshalOptions{DiscardUnknown: true},
	}, nil
}

func (p *Protobuf) Format() string { return FormatProtobuf }

func (p *Protobuf) Decode(payload []byte) (v1.Event, error) {
	msg := dynamicpb.NewMessage(p.envelope)
	if err := proto.Unmarshal(payload, msg); err != nil {
		return nil, fmt.Errorf("decode protobuf envelope: %w", err)
	}

	doc, err := p.toJSON.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("convert protobuf envelope: %w", err)
	}

	var env v1.Envelope
	if err := json.Unmarshal(doc, &env); err != nil {
		return nil, fmt.Errorf("decode converted envelope: %w", err)
	}
	return env.Event()
}

// Encode is the inverse of Decode. Producers and tests use it to build
// protobuf payloads from the JSON envelope shape.
func (p *Protobuf) Encode(env *v1.Envelope) ([]byte, error) {
	doc, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	msg := dynamicpb.NewMessage(p.envelope)
	if err := p.fromJSON.Unmarshal(doc, msg); err != nil {
		return nil, fmt.Errorf("convert envelope: %w", err)
	}
	return proto.Marshal(msg)
}

// embeddedResolver serves a single in-memory proto file.
type embeddedResolver struct {
	fileName string
	content  string
}

func (r *embeddedResolver) FindFileByPath(path string) (protocompile.SearchResult, error) {
	if path == r.fileName {
		return protocompile.SearchResult{
			Source: strings.NewReader(r.content),
		}, nil
	}
	return protocompile.SearchResult{}, fmt.Errorf("file not found: %s", path)
}

func preview(payload []byte) string {
	if len(payload) > maxPreviewPayload {
		return string(payload[:maxPreviewPayload]) + "..."
	}
	return string(payload)
}
