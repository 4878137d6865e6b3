package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:       "schema [envelope|message|notice|history]",
	Short:     "Print the JSON schema of an ingest payload",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"envelope", "message", "notice", "history"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := "envelope"
		if len(args) == 1 {
			kind = args[0]
		}

		var target any
		switch kind {
		case "envelope":
			target = &v1.Envelope{}
		case "message":
			target = &v1.Message{}
		case "notice":
			target = &v1.Notice{}
		case "history":
			target = &v1.HistoryPool{}
		default:
			return fmt.Errorf("unknown payload %q", kind)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payloadSchema(target))
	},
}

var segmentsType = reflect.TypeOf(v1.Segments{})

// payloadSchema reflects v. Segments marshal themselves, so their schema is
// supplied by hand.
func payloadSchema(v any) *jsonschema.Schema {
	r := jsonschema.Reflector{
		DoNotReference: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == segmentsType {
				return segmentsSchema()
			}
			return nil
		},
	}
	return r.Reflect(v)
}

func segmentsSchema() *jsonschema.Schema {
	data := jsonschema.NewProperties()
	for _, key := range []string{"text", "url", "file", "message_id", "id", "target_id", "qq"} {
		data.Set(key, &jsonschema.Schema{
			OneOf: []*jsonschema.Schema{{Type: "string"}, {Type: "number"}},
		})
	}

	props := jsonschema.NewProperties()
	props.Set("type", &jsonschema.Schema{
		Type:        "string",
		Description: "text, image, reply, mention (alias at); other types are kept and ignored",
	})
	props.Set("data", &jsonschema.Schema{Type: "object", Properties: data})

	return &jsonschema.Schema{
		Type: "array",
		Items: &jsonschema.Schema{
			Type:       "object",
			Properties: props,
			Required:   []string{"type"},
		},
	}
}
