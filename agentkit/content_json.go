// Copyright (c) Microsoft. All rights reserved.

package agentkit

import (
	"encoding/json"
	"fmt"
)

// Content values serialize with a $type discriminator so a Contents slice
// can be round-tripped through JSON (session serialization, transcripts).

// MarshalJSON implements json.Marshaler for a single content envelope.
func (cs Contents) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, 0, len(cs))
	for _, c := range cs {
		b, err := marshalContent(c)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return json.Marshal(items)
}

// UnmarshalJSON implements json.Unmarshaler, dispatching on $type.
func (cs *Contents) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(Contents, 0, len(items))
	for _, item := range items {
		c, err := unmarshalContent(item)
		if err != nil {
			return err
		}
		out = append(out, c)
	}
	*cs = out
	return nil
}

func marshalContent(c Content) ([]byte, error) {
	switch v := c.(type) {
	case *TextContent:
		return json.Marshal(struct {
			Type string `json:"$type"`
			Text string `json:"text"`
		}{string(ContentTypeText), v.Text})

	case *ErrorContent:
		return json.Marshal(struct {
			Type      string `json:"$type"`
			Message   string `json:"message,omitempty"`
			ErrorCode string `json:"errorCode,omitempty"`
		}{string(ContentTypeError), v.Message, v.ErrorCode})

	case *FunctionCallContent:
		return json.Marshal(struct {
			Type      string `json:"$type"`
			CallID    string `json:"callId"`
			Name      string `json:"name"`
			Arguments string `json:"arguments,omitempty"`
		}{string(ContentTypeFunctionCall), v.CallID, v.Name, v.Arguments})

	case *FunctionResultContent:
		return json.Marshal(struct {
			Type   string `json:"$type"`
			CallID string `json:"callId"`
			Result any    `json:"result,omitempty"`
		}{string(ContentTypeFunctionResult), v.CallID, v.Result})

	case *UsageContent:
		return json.Marshal(struct {
			Type  string       `json:"$type"`
			Usage UsageDetails `json:"usage"`
		}{string(ContentTypeUsage), v.Usage})

	default:
		return nil, fmt.Errorf("unsupported content type %T", c)
	}
}

func unmarshalContent(data []byte) (Content, error) {
	var head struct {
		Type string `json:"$type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch ContentType(head.Type) {
	case ContentTypeText:
		var v struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &TextContent{Text: v.Text}, nil

	case ContentTypeError:
		var v struct {
			Message   string `json:"message"`
			ErrorCode string `json:"errorCode"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &ErrorContent{Message: v.Message, ErrorCode: v.ErrorCode}, nil

	case ContentTypeFunctionCall:
		var v struct {
			CallID    string `json:"callId"`
			Name      string `json:"name"`
			Arguments string `json:"arguments"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &FunctionCallContent{CallID: v.CallID, Name: v.Name, Arguments: v.Arguments}, nil

	case ContentTypeFunctionResult:
		var v struct {
			CallID string `json:"callId"`
			Result any    `json:"result"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &FunctionResultContent{CallID: v.CallID, Result: v.Result}, nil

	case ContentTypeUsage:
		var v struct {
			Usage UsageDetails `json:"usage"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &UsageContent{Usage: v.Usage}, nil

	default:
		return nil, fmt.Errorf("unknown content $type %q", head.Type)
	}
}
