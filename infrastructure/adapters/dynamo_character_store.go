package adapters

import (
	"context"
	"regexp"
	"strings"

	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/config"
	"github.com/a1j9o94/visual-audio-books/domain"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

type dynamoCharactersItem struct {
	BookKey    string             `dynamodbav:"book_key"`
	BookTitle  string             `dynamodbav:"book_title"`
	Characters []domain.Character `dynamodbav:"characters"`
}

type dynamoCharacterStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoCharacterStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB,
	dynamoConfig *config.DynamoConfig) outbound.CharacterStorePort {
	return &dynamoCharacterStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

// Persist replaces the stored character sequence for the book.
func (c *dynamoCharacterStore) Persist(ctx context.Context, bookTitle string, characters []domain.Character) error {
	item := dynamoCharactersItem{
		BookKey:    SanitizeBookKey(bookTitle),
		BookTitle:  bookTitle,
		Characters: characters,
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to marshal characters item", map[string]interface{}{
			"book_title": bookTitle,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(c.dynamoConfig.CharactersTableName),
	}

	_, err = c.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to save characters item", map[string]interface{}{
			"book_title": bookTitle,
		})
		return err
	}

	return nil
}

// Load returns the stored character sequence, or an empty sequence when
// the book was never persisted.
func (c *dynamoCharacterStore) Load(ctx context.Context, bookTitle string) ([]domain.Character, error) {
	input := &dynamodb.GetItemInput{
		Key: map[string]*dynamodb.AttributeValue{
			"book_key": {S: aws.String(SanitizeBookKey(bookTitle))},
		},
		TableName: aws.String(c.dynamoConfig.CharactersTableName),
	}

	output, err := c.dynamoSvc.GetItemWithContext(ctx, input)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to load characters item", map[string]interface{}{
			"book_title": bookTitle,
		})
		return nil, err
	}
	if output.Item == nil {
		return []domain.Character{}, nil
	}

	var item dynamoCharactersItem
	if err := dynamodbattribute.UnmarshalMap(output.Item, &item); err != nil {
		c.logger.ErrorWithFields(err, "Failed to unmarshal characters item", map[string]interface{}{
			"book_title": bookTitle,
		})
		return nil, err
	}

	return item.Characters, nil
}

var bookKeyPattern = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeBookKey collapses a book title into a stable storage key.
func SanitizeBookKey(bookTitle string) string {
	key := bookKeyPattern.ReplaceAllString(strings.ToLower(bookTitle), "-")
	return strings.Trim(key, "-")
}
