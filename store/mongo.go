package store

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/models"
)

var _ TransactionStore = (*MongoStore)(nil)

// MongoStore persists transactions in a MongoDB collection. The wire-level
// Transaction is kept free of driver tags; this internal document type owns
// the BSON mapping. Amounts are stored as strings to sidestep BSON float
// rounding.
type MongoStore struct {
	collection *mongo.Collection
}

type mongoTransaction struct {
	ID            string     `bson:"_id"`
	Amount        string     `bson:"amount"`
	SenderUPIID   string     `bson:"sender_upi_id"`
	ReceiverUPIID string     `bson:"receiver_upi_id"`
	SenderName    string     `bson:"sender_name"`
	ReceiverName  string     `bson:"receiver_name"`
	SenderPhone   string     `bson:"sender_phone"`
	ReceiverPhone string     `bson:"receiver_phone"`
	Status        string     `bson:"status"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     *time.Time `bson:"updated_at,omitempty"`
}

// NewMongoStore connects to MongoDB, pings it and returns a store backed by
// the "transactions" collection of the named database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("🗄️ Connected to MongoDB!")
	return &MongoStore{collection: client.Database(database).Collection("transactions")}, nil
}

func (s *MongoStore) Create(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
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

	if _, err := s.collection.InsertOne(ctx, toMongoTransaction(tx)); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	var doc mongoTransaction
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return fromMongoTransaction(doc)
}

func (s *MongoStore) UpdateStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error) {
	if !status.ValidTarget() {
		return nil, ErrInvalidStatus
	}

	// Conditional update keyed on the pending status, so a racing second
	// update cannot silently overwrite a terminal state.
	filter := bson.M{"_id": id, "status": string(models.StatusPending)}
	update := bson.M{
		"$set": bson.M{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoTransaction
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish unknown ID from an already-finalized transaction.
			if _, getErr := s.Get(ctx, id); getErr == ErrTransactionNotFound {
				return nil, ErrTransactionNotFound
			} else if getErr != nil {
				return nil, getErr
			}
			return nil, ErrAlreadyFinal
		}
		return nil, err
	}
	return fromMongoTransaction(doc)
}

func toMongoTransaction(tx models.Transaction) mongoTransaction {
	return mongoTransaction{
		ID:            tx.ID,
		Amount:        tx.Amount.String(),
		SenderUPIID:   tx.SenderUPIID,
		ReceiverUPIID: tx.ReceiverUPIID,
		SenderName:    tx.SenderName,
		ReceiverName:  tx.ReceiverName,
		SenderPhone:   tx.SenderPhone,
		ReceiverPhone: tx.ReceiverPhone,
		Status:        string(tx.Status),
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func fromMongoTransaction(doc mongoTransaction) (*models.Transaction, error) {
	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return nil, err
	}
	return &models.Transaction{
		ID:            doc.ID,
		Amount:        amount,
		SenderUPIID:   doc.SenderUPIID,
		ReceiverUPIID: doc.ReceiverUPIID,
		SenderName:    doc.SenderName,
		ReceiverName:  doc.ReceiverName,
		SenderPhone:   doc.SenderPhone,
		ReceiverPhone: doc.ReceiverPhone,
		Status:        models.TransactionStatus(doc.Status),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}
