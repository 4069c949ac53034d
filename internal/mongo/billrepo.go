package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tandoorclub/foh/internal/billing"
)

// BillRepo owns the MongoDB client for the whole service. Sibling repos are
// built from its database once Start has connected.
type BillRepo struct {
	client     *mongo.Client
	db         *mongo.Database
	collection *mongo.Collection
	logger     apt.Logger
	config     *apt.Config
}

func NewBillRepo(config *apt.Config, logger apt.Logger) *BillRepo {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &BillRepo{
		logger: logger,
		config: config,
	}
}

func (r *BillRepo) Start(ctx context.Context) error {
	mongoURL, _ := r.config.GetString("db.mongo.url")
	connString := mongoURL
	if connString == "" {
		connString = "mongodb://localhost:27017"
	}

	dbName, _ := r.config.GetString("db.mongo.name")
	if dbName == "" {
		dbName = "foh"
	}

	clientOptions := options.Client().ApplyURI(connString).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	r.client = client
	r.db = client.Database(dbName)
	r.collection = r.db.Collection("bills")

	// The unique index is what makes bill number allocation safe: generation
	// is advisory, the insert is the arbiter.
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "bill_no", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("cannot create index: %w", err)
	}

	r.logger.Infof("Connected to MongoDB: %s, database: %s, collection: bills", connString, dbName)
	return nil
}

func (r *BillRepo) Stop(ctx context.Context) error {
	if r.client != nil {
		if err := r.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("cannot disconnect from MongoDB: %w", err)
		}
		r.logger.Info("Disconnected from MongoDB")
	}
	return nil
}

func (r *BillRepo) GetDatabase() *mongo.Database {
	return r.db
}

func (r *BillRepo) Create(ctx context.Context, bill *billing.Bill) error {
	if bill == nil {
		return fmt.Errorf("bill is nil")
	}

	if _, err := r.collection.InsertOne(ctx, bill); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return billing.ErrDuplicateBillNumber
		}
		return fmt.Errorf("cannot create bill: %w", err)
	}

	return nil
}

func (r *BillRepo) MaxBillNo(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "bill_no", Value: -1}})

	var bill billing.Bill
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&bill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, fmt.Errorf("cannot find highest bill number: %w", err)
	}

	return bill.BillNo, nil
}

func (r *BillRepo) ListByTimestampRange(ctx context.Context, start, end time.Time) ([]billing.Bill, error) {
	filter := bson.M{"timestamp": bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list bills: %w", err)
	}
	defer cursor.Close(ctx)

	var result []billing.Bill
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode bills: %w", err)
	}

	return result, nil
}
