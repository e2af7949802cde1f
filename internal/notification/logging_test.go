package notification

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"go.uber.org/zap"
)

type mockNotifier struct {
	sendFunc func(ctx context.Context, recipient string, rec *entity.Record, artifactPath string) (bool, error)
}

func (m *mockNotifier) Send(ctx context.Context, recipient string, rec *entity.Record, artifactPath string) (bool, error) {
	return m.sendFunc(ctx, recipient, rec, artifactPath)
}

type mockRecorder struct {
	deliveries []*entity.Delivery
	err        error
}

func (m *mockRecorder) Create(tx *sql.Tx, d *entity.Delivery) error {
	m.deliveries = append(m.deliveries, d)
	return m.err
}

func TestLoggingNotifier_RecordsStatus(t *testing.T) {
	tests := []struct {
		name       string
		sent       bool
		err        error
		wantStatus string
		wantMsg    string
	}{
		{name: "sent", sent: true, wantStatus: entity.DeliveryStatusSent},
		{name: "soft failure", sent: false, wantStatus: entity.DeliveryStatusFailed, wantMsg: "delivery not accepted"},
		{name: "hard failure", err: errors.New("connection refused"), wantStatus: entity.DeliveryStatusError, wantMsg: "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &mockNotifier{
				sendFunc: func(ctx context.Context, recipient string, rec *entity.Record, artifactPath string) (bool, error) {
					return tt.sent, tt.err
				},
			}
			recorder := &mockRecorder{}
			n := NewLoggingNotifier(next, entity.ChannelSMTP, recorder, zap.NewNop())

			sent, err := n.Send(context.Background(), "billing@acme.test", testRecord(), "/tmp/VREB1234.pdf")
			assert.Equal(t, tt.sent, sent)
			assert.Equal(t, tt.err, err)

			require.Len(t, recorder.deliveries, 1)
			d := recorder.deliveries[0]
			assert.Equal(t, "VREB1234", d.InvoiceNumber)
			assert.Equal(t, entity.ChannelSMTP, d.Channel)
			assert.Equal(t, tt.wantStatus, d.Status)
			assert.Equal(t, tt.wantMsg, d.ErrorMessage)
			assert.False(t, d.AttemptedAt.IsZero())
		})
	}
}

func TestLoggingNotifier_RecorderFailureKeepsResult(t *testing.T) {
	next := &mockNotifier{
		sendFunc: func(ctx context.Context, recipient string, rec *entity.Record, artifactPath string) (bool, error) {
			return true, nil
		},
	}
	n := NewLoggingNotifier(next, entity.ChannelLark, &mockRecorder{err: errors.New("disk full")}, zap.NewNop())

	sent, err := n.Send(context.Background(), "billing@acme.test", testRecord(), "/tmp/VREB1234.pdf")
	assert.NoError(t, err)
	assert.True(t, sent)
}

func TestDryRunNotifier(t *testing.T) {
	n := NewDryRunNotifier(zap.NewNop())

	sent, err := n.Send(context.Background(), "billing@acme.test", testRecord(), "/tmp/x.pdf")
	assert.NoError(t, err)
	assert.False(t, sent)
}
