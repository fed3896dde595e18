package database

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/retailpulse/backend/internal/domain/entities"
	"github.com/retailpulse/backend/internal/domain/repositories"
	"github.com/retailpulse/backend/internal/infrastructure/clients/mongodb"
	"github.com/retailpulse/backend/internal/query"
	apperrors "github.com/retailpulse/backend/pkg/errors"
)

// SaleAdapter implements the SaleRepository interface on MongoDB.
type SaleAdapter struct {
	client *mongodb.Client
}

// NewSaleAdapter creates a new sale adapter
func NewSaleAdapter(client *mongodb.Client) repositories.SaleRepository {
	return &SaleAdapter{client: client}
}

// Search returns the records matching a data query.
func (a *SaleAdapter) Search(ctx context.Context, q query.Query) ([]*entities.Sale, error) {
	filter, err := toBSONFilter(q.Conditions)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(toBSONSort(q)).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := a.client.Sales().Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search sales", err)
	}
	defer cursor.Close(ctx)

	sales := []*entities.Sale{}
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, apperrors.NewInternalError("failed to decode sales", err)
	}

	return sales, nil
}

// Count returns the number of records matching a count query.
func (a *SaleAdapter) Count(ctx context.Context, q query.Query) (int64, error) {
	filter, err := toBSONFilter(q.Conditions)
	if err != nil {
		return 0, err
	}

	count, err := a.client.Sales().CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to count sales", err)
	}
	return count, nil
}

// Distinct enumerates the distinct stored values of a field. Null and
// non-string values are discarded.
func (a *SaleAdapter) Distinct(ctx context.Context, field string) ([]string, error) {
	raw, err := a.client.Sales().Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to enumerate distinct %s values", field), err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

// Summary computes the headline totals over all records.
func (a *SaleAdapter) Summary(ctx context.Context) (*entities.SalesSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalUnits", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
			{Key: "totalAmount", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
			{Key: "totalRecords", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := a.client.Sales().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate sales summary", err)
	}
	defer cursor.Close(ctx)

	var results []entities.SalesSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, apperrors.NewInternalError("failed to decode sales summary", err)
	}

	if len(results) == 0 {
		return &entities.SalesSummary{}, nil
	}
	return &results[0], nil
}

// CountAll returns the total number of stored records.
func (a *SaleAdapter) CountAll(ctx context.Context) (int64, error) {
	count, err := a.client.Sales().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.NewInternalError("failed to count sales", err)
	}
	return count, nil
}

// BulkInsert inserts a batch of records. The write is unordered so one bad
// document does not abort the batch.
func (a *SaleAdapter) BulkInsert(ctx context.Context, sales []entities.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	docs := make([]interface{}, len(sales))
	for i := range sales {
		docs[i] = sales[i]
	}

	if _, err := a.client.Sales().InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return apperrors.NewInternalError("failed to bulk insert sales", err)
	}
	return nil
}

// toBSONFilter translates a condition tree into a MongoDB filter document.
// Conditions conjoin under $and, which keeps independently built OR groups
// (search term, tag selection) from colliding on a shared $or key.
func toBSONFilter(conditions []query.Condition) (bson.M, error) {
	if len(conditions) == 0 {
		return bson.M{}, nil
	}

	clauses := make([]bson.M, 0, len(conditions))
	for _, c := range conditions {
		clause, err := conditionToBSON(c)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}

	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return bson.M{"$and": clauses}, nil
}

func conditionToBSON(c query.Condition) (bson.M, error) {
	switch cond := c.(type) {
	case query.InSet:
		return bson.M{cond.Field: bson.M{"$in": cond.Values}}, nil

	case query.IntRange:
		bounds := bson.M{}
		if cond.Min != nil {
			bounds["$gte"] = *cond.Min
		}
		if cond.Max != nil {
			bounds["$lte"] = *cond.Max
		}
		return bson.M{cond.Field: bounds}, nil

	case query.TimeRange:
		bounds := bson.M{}
		if cond.Min != nil {
			bounds["$gte"] = *cond.Min
		}
		if cond.Max != nil {
			bounds["$lte"] = *cond.Max
		}
		return bson.M{cond.Field: bounds}, nil

	case query.Contains:
		// QuoteMeta keeps user input from being interpreted as a pattern.
		return bson.M{cond.Field: primitive.Regex{
			Pattern: regexp.QuoteMeta(cond.Term),
			Options: "i",
		}}, nil

	case query.TokenMatch:
		// The token must occupy a whole comma-delimited segment.
		return bson.M{cond.Field: primitive.Regex{
			Pattern: `(^|,\s*)` + regexp.QuoteMeta(cond.Token) + `(\s*,|$)`,
			Options: "i",
		}}, nil

	case query.AnyOf:
		clauses := make([]bson.M, 0, len(cond.Conditions))
		for _, sub := range cond.Conditions {
			clause, err := conditionToBSON(sub)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, clause)
		}
		return bson.M{"$or": clauses}, nil

	default:
		return nil, apperrors.NewInternalError(fmt.Sprintf("unsupported condition type %T", c), nil)
	}
}

// toBSONSort builds the sort document. transactionId is appended as a
// secondary key so equal-key ordering is deterministic across pages.
func toBSONSort(q query.Query) bson.D {
	dir := -1
	if q.SortOrder == query.SortAsc {
		dir = 1
	}

	sort := bson.D{{Key: q.SortBy, Value: dir}}
	if q.SortBy != query.FieldTransactionID {
		sort = append(sort, bson.E{Key: query.FieldTransactionID, Value: 1})
	}
	return sort
}
