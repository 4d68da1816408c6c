package handler

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamlinehq/streamline/internal/validation"
)

func TestBulkUserActionRequestValidate(t *testing.T) {
	validID := "0e4edd45-9cb8-45a4-9d67-1e9cf6040abc"

	tests := []struct {
		name    string
		req     BulkUserActionRequest
		wantErr bool
		custom  string
	}{
		{
			name: "activate",
			req:  BulkUserActionRequest{Action: "activate", UserIDs: []string{validID}},
		},
		{
			name: "set_role with role",
			req:  BulkUserActionRequest{Action: "set_role", UserIDs: []string{validID}, Role: "technician"},
		},
		{
			name:    "set_role without role",
			req:     BulkUserActionRequest{Action: "set_role", UserIDs: []string{validID}},
			wantErr: true,
			custom:  "role",
		},
		{
			name:    "unknown action",
			req:     BulkUserActionRequest{Action: "delete", UserIDs: []string{validID}},
			wantErr: true,
		},
		{
			name:    "empty user list",
			req:     BulkUserActionRequest{Action: "activate", UserIDs: []string{}},
			wantErr: true,
		},
		{
			name:    "malformed user id",
			req:     BulkUserActionRequest{Action: "activate", UserIDs: []string{"nope"}},
			wantErr: true,
		},
		{
			name:    "unknown role",
			req:     BulkUserActionRequest{Action: "set_role", UserIDs: []string{validID}, Role: "owner"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.custom != "" {
				var customErrs validation.CustomValidationErrors
				require.ErrorAs(t, err, &customErrs)
				require.Len(t, customErrs, 1)
				assert.Equal(t, tt.custom, customErrs[0].Field)
			}
		})
	}
}

func TestCreateJobRequestValidate(t *testing.T) {
	validID := "0e4edd45-9cb8-45a4-9d67-1e9cf6040abc"
	start := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	t.Run("valid with window", func(t *testing.T) {
		req := CreateJobRequest{
			ContactID:      validID,
			Title:          "Replace water heater",
			ScheduledStart: &start,
			ScheduledEnd:   &end,
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("valid without window", func(t *testing.T) {
		req := CreateJobRequest{ContactID: validID, Title: "Estimate visit"}
		assert.NoError(t, req.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		req := CreateJobRequest{
			ContactID:      validID,
			Title:          "Replace water heater",
			ScheduledStart: &end,
			ScheduledEnd:   &start,
		}

		var customErrs validation.CustomValidationErrors
		require.ErrorAs(t, req.Validate(), &customErrs)
		assert.Equal(t, "scheduled_end", customErrs[0].Field)
	})

	t.Run("end equals start", func(t *testing.T) {
		req := CreateJobRequest{
			ContactID:      validID,
			Title:          "Replace water heater",
			ScheduledStart: &start,
			ScheduledEnd:   &start,
		}
		assert.Error(t, req.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		req := CreateJobRequest{ContactID: validID}

		var tagErrs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &tagErrs)
	})
}

func TestCreateConversationRequestValidate(t *testing.T) {
	validID := "0e4edd45-9cb8-45a4-9d67-1e9cf6040abc"

	tests := []struct {
		name    string
		req     CreateConversationRequest
		wantErr bool
	}{
		{
			name: "by contact id",
			req:  CreateConversationRequest{ContactID: validID, Channel: "sms"},
		},
		{
			name: "by phone",
			req:  CreateConversationRequest{ContactPhone: "+15551234567", Channel: "sms"},
		},
		{
			name:    "neither identifier",
			req:     CreateConversationRequest{Channel: "sms"},
			wantErr: true,
		},
		{
			name:    "both identifiers",
			req:     CreateConversationRequest{ContactID: validID, ContactPhone: "+15551234567", Channel: "sms"},
			wantErr: true,
		},
		{
			name:    "unknown channel",
			req:     CreateConversationRequest{ContactID: validID, Channel: "fax"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUpdateJobRequestValidate(t *testing.T) {
	validID := "0e4edd45-9cb8-45a4-9d67-1e9cf6040abc"
	start := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	req := UpdateJobRequest{
		ID: validID,
		CreateJobRequest: CreateJobRequest{
			ContactID:      validID,
			Title:          "Annual service",
			ScheduledStart: &end,
			ScheduledEnd:   &start,
		},
	}

	var customErrs validation.CustomValidationErrors
	require.ErrorAs(t, req.Validate(), &customErrs)
	assert.Equal(t, "scheduled_end", customErrs[0].Field)

	req.ScheduledStart = &start
	req.ScheduledEnd = &end
	assert.NoError(t, req.Validate())

	req.ID = "not-a-uuid"
	assert.Error(t, req.Validate())
}
