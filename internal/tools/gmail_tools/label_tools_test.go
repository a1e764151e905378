package gmail_tools

import (
	"context"
	"testing"
)

func TestHandleModifyLabels_RejectsInvalidArguments(t *testing.T) {
	sc := newTestServerContext(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "missing messageIds",
			args: map[string]interface{}{
				"addLabelIds": "Label_1",
			},
		},
		{
			name: "neither add nor remove",
			args: map[string]interface{}{
				"messageIds": "msg123",
			},
		},
		{
			name: "non-string id in array",
			args: map[string]interface{}{
				"messageIds":  []interface{}{"msg123", 7},
				"addLabelIds": "Label_1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleModifyLabels(context.Background(), toolRequest("gmail_modify_labels", tt.args), sc)
			if err != nil {
				t.Fatalf("handler returned Go error: %v", err)
			}
			if result == nil || !result.IsError {
				t.Error("expected an error result")
			}
		})
	}
}

func TestHandleCreateLabel_RequiresName(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleCreateLabel(context.Background(), toolRequest("gmail_create_label", map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("handler returned Go error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected an error result")
	}
}
