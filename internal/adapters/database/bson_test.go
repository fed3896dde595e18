package database

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/retailpulse/backend/internal/query"
)

func TestToBSONFilter_Empty(t *testing.T) {
	filter, err := toBSONFilter(nil)
	require.NoError(t, err)
	assert.Equal(t, bson.M{}, filter)
}

func TestToBSONFilter_SingleConditionUnwrapped(t *testing.T) {
	filter, err := toBSONFilter([]query.Condition{
		query.InSet{Field: "gender", Values: []string{"Female"}},
	})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"gender": bson.M{"$in": []string{"Female"}}}, filter)
}

// Independently built OR groups land in separate $and clauses instead of
// fighting over a single $or key.
func TestToBSONFilter_MultipleConditionsConjoinUnderAnd(t *testing.T) {
	conditions := []query.Condition{
		query.AnyOf{Conditions: []query.Condition{
			query.Contains{Field: "customerName", Term: "ada"},
			query.Contains{Field: "phoneNumber", Term: "ada"},
		}},
		query.AnyOf{Conditions: []query.Condition{
			query.TokenMatch{Field: "tags", Token: "vip"},
		}},
	}

	filter, err := toBSONFilter(conditions)
	require.NoError(t, err)

	clauses, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 2)
	assert.Contains(t, clauses[0], "$or")
	assert.Contains(t, clauses[1], "$or")
}

func TestConditionToBSON_Ranges(t *testing.T) {
	min30, max40 := 30, 40

	clause, err := conditionToBSON(query.IntRange{Field: "age", Min: &min30, Max: &max40})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"age": bson.M{"$gte": 30, "$lte": 40}}, clause)

	clause, err = conditionToBSON(query.IntRange{Field: "age", Min: &min30})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"age": bson.M{"$gte": 30}}, clause)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	clause, err = conditionToBSON(query.TimeRange{Field: "date", Max: &from})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"date": bson.M{"$lte": from}}, clause)
}

func TestConditionToBSON_ContainsEscapesUserInput(t *testing.T) {
	clause, err := conditionToBSON(query.Contains{Field: "customerName", Term: "a.c(d"})
	require.NoError(t, err)

	re, ok := clause["customerName"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "i", re.Options)

	// The literal must match only itself, never as a pattern.
	compiled := regexp.MustCompile(re.Pattern)
	assert.True(t, compiled.MatchString("xx a.c(d yy"))
	assert.False(t, compiled.MatchString("abc(d"))
}

func TestConditionToBSON_TokenMatchIsDelimiterBounded(t *testing.T) {
	clause, err := conditionToBSON(query.TokenMatch{Field: "tags", Token: "sale"})
	require.NoError(t, err)

	re, ok := clause["tags"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "i", re.Options)

	compiled := regexp.MustCompile("(?i)" + re.Pattern)
	assert.True(t, compiled.MatchString("sale, electronics"))
	assert.True(t, compiled.MatchString("electronics, sale"))
	assert.True(t, compiled.MatchString("electronics,sale,new"))
	assert.True(t, compiled.MatchString("SALE"))
	assert.False(t, compiled.MatchString("electronics-sale"))
	assert.False(t, compiled.MatchString("wholesale"))
	assert.False(t, compiled.MatchString("salesman, new"))
}

func TestToBSONSort_SecondaryKeyForDeterminism(t *testing.T) {
	sort := toBSONSort(query.Query{SortBy: "date", SortOrder: query.SortDesc})
	assert.Equal(t, bson.D{
		{Key: "date", Value: -1},
		{Key: "transactionId", Value: 1},
	}, sort)

	sort = toBSONSort(query.Query{SortBy: "totalAmount", SortOrder: query.SortAsc})
	assert.Equal(t, bson.D{
		{Key: "totalAmount", Value: 1},
		{Key: "transactionId", Value: 1},
	}, sort)

	// Sorting by the tie-break key itself needs no second key.
	sort = toBSONSort(query.Query{SortBy: "transactionId", SortOrder: query.SortAsc})
	assert.Equal(t, bson.D{{Key: "transactionId", Value: 1}}, sort)
}
