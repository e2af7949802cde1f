package lark

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	larkIm "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	"go.uber.org/zap"
)

// Receive ID types accepted by the IM API
const (
	ReceiveIDTypeEmail  = "email"
	ReceiveIDTypeOpenID = "open_id"
	ReceiveIDTypeUserID = "user_id"
)

// APIError is a well-formed Lark response carrying a non-zero code
type APIError struct {
	Op   string
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error: code=%d, msg=%s", e.Op, e.Code, e.Msg)
}

// MessageAPI handles Lark messaging operations
type MessageAPI struct {
	client *Client
	logger *zap.Logger
}

// NewMessageAPI creates a new message API handler
func NewMessageAPI(client *Client, logger *zap.Logger) *MessageAPI {
	return &MessageAPI{
		client: client,
		logger: logger,
	}
}

// SendMessage sends a message to a user or group
func (m *MessageAPI) SendMessage(ctx context.Context, receiveIDType, receiveID, msgType, content string) (string, error) {
	req := larkIm.NewCreateMessageReqBuilder().
		ReceiveIdType(receiveIDType).
		Body(larkIm.NewCreateMessageReqBodyBuilder().
			ReceiveId(receiveID).
			MsgType(msgType).
			Content(content).
			Build()).
		Build()

	resp, err := m.client.client.Im.Message.Create(ctx, req)
	if err != nil {
		m.logger.Error("Failed to send message",
			zap.String("receive_id", receiveID),
			zap.Error(err))
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	if !resp.Success() {
		m.logger.Error("API returned failure",
			zap.String("receive_id", receiveID),
			zap.Int("code", resp.Code),
			zap.String("msg", resp.Msg))
		return "", &APIError{Op: "send message", Code: resp.Code, Msg: resp.Msg}
	}

	messageID := ""
	if resp.Data != nil && resp.Data.MessageId != nil {
		messageID = *resp.Data.MessageId
	}

	m.logger.Info("Message sent successfully",
		zap.String("message_id", messageID),
		zap.String("receive_id", receiveID))

	return messageID, nil
}

// SendText sends a plain text message
func (m *MessageAPI) SendText(ctx context.Context, receiveIDType, receiveID, text string) (string, error) {
	content, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("failed to encode text content: %w", err)
	}
	return m.SendMessage(ctx, receiveIDType, receiveID, "text", string(content))
}

// SendFile sends a previously uploaded file
func (m *MessageAPI) SendFile(ctx context.Context, receiveIDType, receiveID, fileKey string) (string, error) {
	content, err := json.Marshal(map[string]string{"file_key": fileKey})
	if err != nil {
		return "", fmt.Errorf("failed to encode file content: %w", err)
	}
	return m.SendMessage(ctx, receiveIDType, receiveID, "file", string(content))
}

// UploadFile uploads a PDF through the IM file API and returns its file key
func (m *MessageAPI) UploadFile(ctx context.Context, fileName string, file io.Reader) (string, error) {
	req := larkIm.NewCreateFileReqBuilder().
		Body(larkIm.NewCreateFileReqBodyBuilder().
			FileType("pdf").
			FileName(fileName).
			File(file).
			Build()).
		Build()

	resp, err := m.client.client.Im.File.Create(ctx, req)
	if err != nil {
		m.logger.Error("Failed to upload file",
			zap.String("file_name", fileName),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	if !resp.Success() {
		m.logger.Error("File upload rejected",
			zap.String("file_name", fileName),
			zap.Int("code", resp.Code),
			zap.String("msg", resp.Msg))
		return "", &APIError{Op: "upload file", Code: resp.Code, Msg: resp.Msg}
	}

	if resp.Data == nil || resp.Data.FileKey == nil {
		return "", &APIError{Op: "upload file", Msg: "response carried no file key"}
	}

	m.logger.Info("File uploaded",
		zap.String("file_name", fileName),
		zap.String("file_key", *resp.Data.FileKey))
	return *resp.Data.FileKey, nil
}
