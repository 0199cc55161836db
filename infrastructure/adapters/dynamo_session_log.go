package adapters

import (
	"context"
	"encoding/json"
	"time"

	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/google/uuid"
)

type dynamoLogItem struct {
	BookKey   string `dynamodbav:"book_key"`
	EntryId   string `dynamodbav:"entry_id"`
	LogType   string `dynamodbav:"log_type"`
	Timestamp string `dynamodbav:"timestamp"`
	Data      string `dynamodbav:"data"`
	TTL       int64  `dynamodbav:"ttl"`
}

type dynamoSessionLog struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoSessionLog(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB,
	dynamoConfig *config.DynamoConfig) outbound.SessionLogPort {
	return &dynamoSessionLog{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

// Persist appends one log entry for the book. Callers treat this as
// fire-and-forget; the returned error is for local logging only.
func (l *dynamoSessionLog) Persist(ctx context.Context, bookName string, logType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		l.logger.ErrorWithFields(err, "Failed to marshal log data", map[string]interface{}{
			"book_name": bookName,
			"log_type":  logType,
		})
		return err
	}

	item := dynamoLogItem{
		BookKey:   SanitizeBookKey(bookName),
		EntryId:   uuid.NewString(),
		LogType:   logType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      string(payload),
		TTL:       time.Now().Add(time.Duration(l.dynamoConfig.LogTtlMinutes) * time.Minute).Unix(),
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		l.logger.ErrorWithFields(err, "Failed to marshal log item", map[string]interface{}{
			"book_name": bookName,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(l.dynamoConfig.SessionLogTableName),
	}

	_, err = l.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		l.logger.ErrorWithFields(err, "Failed to save log item", map[string]interface{}{
			"book_name": bookName,
			"log_type":  logType,
		})
		return err
	}

	return nil
}
