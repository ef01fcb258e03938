package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lifeguard-ai/lifeguard-backend/internal/config"
	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
)

type mockGateway struct{ mock.Mock }

func (m *mockGateway) Publish(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) Status(ctx context.Context, messageID string) (string, error) {
	args := m.Called(ctx, messageID)
	return args.String(0), args.Error(1)
}

func testSMSConfig() config.SMSConfig {
	return config.SMSConfig{
		DefaultCountry:  "+91",
		DefaultLanguage: "en",
		SendTimeout:     2 * time.Second,
	}
}

func TestSend_MockModeNeverFails(t *testing.T) {
	svc := NewService(nil, testSMSConfig())

	res := svc.Send(context.Background(), "9876543210", "flood", "hi", map[string]string{
		"region": "Bihar",
	})

	assert.True(t, res.Success)
	assert.Equal(t, StatusMockSent, res.Status)
	assert.True(t, strings.HasPrefix(res.SID, "MOCK-"))
	assert.NotEqual(t, "MOCK-", res.SID)
	assert.Equal(t, "+919876543210", res.To)
	assert.Contains(t, res.Message, "Bihar")
}

func TestSend_GatewaySuccess(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Publish", mock.Anything, "+919876543210", mock.Anything).Return("SM123", nil)

	svc := NewService(gw, testSMSConfig())
	res := svc.Send(context.Background(), "9876543210", "cyclone", "en", map[string]string{
		"region":   "Odisha",
		"severity": "5",
	})

	assert.True(t, res.Success)
	assert.Equal(t, StatusSent, res.Status)
	assert.Equal(t, "SM123", res.SID)
	assert.Contains(t, res.Message, "Odisha")
	assert.Contains(t, res.Message, "5/5")
	gw.AssertExpectations(t)
}

func TestSend_GatewayFailure(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return("", &GatewayError{Err: errors.New("throttled")})

	svc := NewService(gw, testSMSConfig())
	res := svc.Send(context.Background(), "9876543210", "flood", "en", nil)

	assert.False(t, res.Success)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Error, "throttled")
}

func TestSend_UnexpectedError(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("connection reset"))

	svc := NewService(gw, testSMSConfig())
	res := svc.Send(context.Background(), "9876543210", "flood", "en", nil)

	assert.False(t, res.Success)
	assert.Equal(t, StatusErrored, res.Status)
}

func TestSend_PreservesExplicitCountryCode(t *testing.T) {
	svc := NewService(nil, testSMSConfig())

	res := svc.Send(context.Background(), "+15551234567", "flood", "en", nil)
	assert.Equal(t, "+15551234567", res.To)
}

func TestSendDisasterAlert(t *testing.T) {
	svc := NewService(nil, testSMSConfig())

	res := svc.SendDisasterAlert(context.Background(), "9876543210",
		models.DisasterTypeTsunami, "Tamil Nadu", 5, "en")

	require.True(t, res.Success)
	assert.Contains(t, res.Message, "Tsunami warning")
	assert.Contains(t, res.Message, "Tamil Nadu")
}

func TestSendBloodDonorAlert(t *testing.T) {
	svc := NewService(nil, testSMSConfig())

	res := svc.SendBloodDonorAlert(context.Background(), "9876543210",
		"O+", "Kerala", "flood", "+914412345678", "en")

	require.True(t, res.Success)
	assert.Contains(t, res.Message, "O+")
	assert.Contains(t, res.Message, "Kerala")
}

func TestSendBulk_OneFailureDoesNotAbortBatch(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Publish", mock.Anything, "+911111111111", mock.Anything).Return("SM1", nil)
	gw.On("Publish", mock.Anything, "+912222222222", mock.Anything).
		Return("", &GatewayError{Err: errors.New("invalid number")})
	gw.On("Publish", mock.Anything, "+913333333333", mock.Anything).Return("SM3", nil)

	svc := NewService(gw, testSMSConfig())
	summary := svc.SendBulk(context.Background(),
		[]string{"1111111111", "2222222222", "3333333333"},
		"flood", "en", map[string]string{"region": "Assam"})

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Details, 3)
	assert.Equal(t, StatusFailed, summary.Details[1].Status)
	gw.AssertExpectations(t)
}

func TestStatus_MockMode(t *testing.T) {
	svc := NewService(nil, testSMSConfig())

	info := svc.Status(context.Background(), "MOCK-1")
	assert.Equal(t, "mock", info.Status)
	assert.Equal(t, "MOCK-1", info.MessageID)
}

func TestStatus_ForwardsToGateway(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Status", mock.Anything, "SM123").Return("accepted", nil)

	svc := NewService(gw, testSMSConfig())
	info := svc.Status(context.Background(), "SM123")

	assert.Equal(t, "accepted", info.Status)
	gw.AssertExpectations(t)
}
