package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

type QuoteRepository struct {
	col *mongo.Collection
}

func NewQuoteRepository(db *mongo.Database) *QuoteRepository {
	return &QuoteRepository{col: db.Collection(collectionQuotes)}
}

// client_id and product_id are kept as ObjectIDs so $lookup can join on _id.
type mongoQuote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClientID  primitive.ObjectID `bson:"client_id"`
	ProductID primitive.ObjectID `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (q mongoQuote) toDomain() domain.QuoteRequest {
	return domain.QuoteRequest{
		ID:        q.ID.Hex(),
		ClientID:  q.ClientID.Hex(),
		ProductID: q.ProductID.Hex(),
		Quantity:  q.Quantity,
		Message:   q.Message,
		Status:    domain.QuoteStatus(q.Status),
		CreatedAt: q.CreatedAt.UTC(),
	}
}

// mongoQuoteView is one row of the List pipeline. The bson codec does not
// inline unexported embedded structs, so the quote columns are spelled out.
type mongoQuoteView struct {
	ID        primitive.ObjectID `bson:"_id"`
	ClientID  primitive.ObjectID `bson:"client_id"`
	ProductID primitive.ObjectID `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	Client    mongoUser          `bson:"client"`
	Product   mongoProduct       `bson:"product"`
}

func (v mongoQuoteView) toDomain() domain.QuoteRequest {
	return mongoQuote{
		ID:        v.ID,
		ClientID:  v.ClientID,
		ProductID: v.ProductID,
		Quantity:  v.Quantity,
		Message:   v.Message,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
	}.toDomain()
}

func (r *QuoteRepository) Create(ctx context.Context, q *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	clientID, ok := objectID(q.ClientID)
	if !ok {
		return nil, domain.NewValidationError("client id is malformed")
	}
	productID, ok := objectID(q.ProductID)
	if !ok {
		return nil, domain.NewValidationError("product_id does not reference an existing product")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoQuote{
		ID:        primitive.NewObjectID(),
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  q.Quantity,
		Message:   q.Message,
		Status:    string(q.Status),
		CreatedAt: q.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert quote request: %w", err)
	}

	created := doc.toDomain()
	return &created, nil
}

// List joins each request with its client and product. Requests whose client or
// product no longer exists are dropped by the $unwind stages.
func (r *QuoteRepository) List(ctx context.Context, clientID string) ([]*domain.QuoteView, error) {
	pipeline := mongo.Pipeline{}
	if clientID != "" {
		oid, ok := objectID(clientID)
		if !ok {
			return []*domain.QuoteView{}, nil
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"client_id": oid}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": collectionUsers, "localField": "client_id", "foreignField": "_id", "as": "client",
		}}},
		bson.D{{Key: "$unwind", Value: "$client"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": collectionProducts, "localField": "product_id", "foreignField": "_id", "as": "product",
		}}},
		bson.D{{Key: "$unwind", Value: "$product"}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
	)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list quote requests: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.QuoteView, 0)
	for cur.Next(ctx) {
		var row mongoQuoteView
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode quote request: %w", err)
		}
		price, err := fromDecimal128(row.Product.Price)
		if err != nil {
			return nil, fmt.Errorf("quote request %s: %w", row.ID.Hex(), err)
		}
		out = append(out, &domain.QuoteView{
			QuoteRequest: row.toDomain(),
			ClientName:   row.Client.Name,
			ClientEmail:  row.Client.Email,
			ProductName:  row.Product.Name,
			ProductPrice: price,
		})
	}
	return out, cur.Err()
}

func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrQuoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}
