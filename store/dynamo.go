package store

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/models"
)

var _ TransactionStore = (*DynamoStore)(nil)

// DynamoStore persists transactions in a DynamoDB table keyed by id.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

type dynamoTransaction struct {
	ID            string `json:"id"`
	Amount        string `json:"amount"`
	SenderUPIID   string `json:"sender_upi_id"`
	ReceiverUPIID string `json:"receiver_upi_id"`
	SenderName    string `json:"sender_name"`
	ReceiverName  string `json:"receiver_name"`
	SenderPhone   string `json:"sender_phone"`
	ReceiverPhone string `json:"receiver_phone"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

func NewDynamoStore(opts ...func(*DynamoStore)) *DynamoStore {
	s := new(DynamoStore)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func WithDynamoClient(client *dynamodb.Client) func(*DynamoStore) {
	return func(s *DynamoStore) {
		s.client = client
	}
}

func WithTableName(tableName string) func(*DynamoStore) {
	return func(s *DynamoStore) {
		s.tableName = tableName
	}
}

func (s *DynamoStore) Create(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
	tx := models.Transaction{
		ID:            NewTransactionID(),
		Amount:        req.Amount,
		SenderUPIID:   req.SenderUPIID,
		ReceiverUPIID: req.ReceiverUPIID,
		SenderName:    req.SenderName,
		ReceiverName:  req.ReceiverName,
		SenderPhone:   req.SenderPhone,
		ReceiverPhone: req.ReceiverPhone,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	av, err := attributevalue.MarshalMapWithOptions(toDynamoTransaction(tx), func(opts *attributevalue.EncoderOptions) {
		opts.TagKey = "json"
	})
	if err != nil {
		return nil, err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *DynamoStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	output, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(output.Item) == 0 {
		return nil, ErrTransactionNotFound
	}

	record := new(dynamoTransaction)
	err = attributevalue.UnmarshalMapWithOptions(output.Item, record, func(opts *attributevalue.DecoderOptions) {
		opts.TagKey = "json"
	})
	if err != nil {
		return nil, err
	}
	return fromDynamoTransaction(*record)
}

func (s *DynamoStore) UpdateStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error) {
	if !status.ValidTarget() {
		return nil, ErrInvalidStatus
	}

	now := time.Now().UTC()
	update := expression.
		Set(expression.Name("status"), expression.Value(string(status))).
		Set(expression.Name("updated_at"), expression.Value(now.Format(time.RFC3339Nano)))
	// The item must exist and still be pending; terminal records stay frozen.
	condition := expression.Name("id").AttributeExists().
		And(expression.Name("status").Equal(expression.Value(string(models.StatusPending))))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(condition).Build()
	if err != nil {
		return nil, err
	}

	output, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			if _, getErr := s.Get(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrAlreadyFinal
		}
		return nil, err
	}

	record := new(dynamoTransaction)
	err = attributevalue.UnmarshalMapWithOptions(output.Attributes, record, func(opts *attributevalue.DecoderOptions) {
		opts.TagKey = "json"
	})
	if err != nil {
		return nil, err
	}
	return fromDynamoTransaction(*record)
}

func toDynamoTransaction(tx models.Transaction) dynamoTransaction {
	record := dynamoTransaction{
		ID:            tx.ID,
		Amount:        tx.Amount.String(),
		SenderUPIID:   tx.SenderUPIID,
		ReceiverUPIID: tx.ReceiverUPIID,
		SenderName:    tx.SenderName,
		ReceiverName:  tx.ReceiverName,
		SenderPhone:   tx.SenderPhone,
		ReceiverPhone: tx.ReceiverPhone,
		Status:        string(tx.Status),
		CreatedAt:     tx.CreatedAt.Format(time.RFC3339Nano),
	}
	if tx.UpdatedAt != nil {
		record.UpdatedAt = tx.UpdatedAt.Format(time.RFC3339Nano)
	}
	return record
}

func fromDynamoTransaction(record dynamoTransaction) (*models.Transaction, error) {
	amount, err := decimal.NewFromString(record.Amount)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, record.CreatedAt)
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:            record.ID,
		Amount:        amount,
		SenderUPIID:   record.SenderUPIID,
		ReceiverUPIID: record.ReceiverUPIID,
		SenderName:    record.SenderName,
		ReceiverName:  record.ReceiverName,
		SenderPhone:   record.SenderPhone,
		ReceiverPhone: record.ReceiverPhone,
		Status:        models.TransactionStatus(record.Status),
		CreatedAt:     createdAt,
	}
	if record.UpdatedAt != "" {
		updatedAt, err := time.Parse(time.RFC3339Nano, record.UpdatedAt)
		if err != nil {
			return nil, err
		}
		tx.UpdatedAt = &updatedAt
	}
	return tx, nil
}
