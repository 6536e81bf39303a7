// Package dynamo implements the attendance ledger on a single DynamoDB table.
//
// Item layout (pk, sk):
//
//	EVENT#<event_id>, RESPONDENT#<email>   one attendance record
//	EVENT#<event_id>, RESPONSE#<response>  numeric "count" attribute
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"eventrsvp/internal/domain"
)

const (
	eventPrefix      = "EVENT#"
	respondentPrefix = "RESPONDENT#"
	responsePrefix   = "RESPONSE#"

	conditionalCheckFailed = "ConditionalCheckFailed"
	maxBatchGetAttempts    = 5
)

// API is the subset of the DynamoDB client the ledger uses.
type API interface {
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type attendanceLedger struct {
	client API
	table  string
}

// NewAttendanceLedger returns a domain.AttendanceLedger that stores records and
// counters in table.
func NewAttendanceLedger(client API, table string) domain.AttendanceLedger {
	return &attendanceLedger{client: client, table: table}
}

func eventPK(eventID string) string { return eventPrefix + eventID }

func str(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

func (l *attendanceLedger) Record(ctx context.Context, rec *domain.AttendanceRecord) (domain.RecordResult, error) {
	pk := eventPK(rec.EventID)
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName: aws.String(l.table),
					Item: map[string]types.AttributeValue{
						"pk":        str(pk),
						"sk":        str(respondentPrefix + rec.Email),
						"full_name": str(rec.FullName),
						"email":     str(rec.Email),
						"response":  str(string(rec.Response)),
						"timestamp": &types.AttributeValueMemberN{Value: strconv.FormatInt(rec.SubmittedAt.UnixMilli(), 10)},
					},
					ConditionExpression: aws.String("attribute_not_exists(pk) AND attribute_not_exists(sk)"),
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(l.table),
					Key: map[string]types.AttributeValue{
						"pk": str(pk),
						"sk": str(responsePrefix + string(rec.Response)),
					},
					UpdateExpression:         aws.String("ADD #count :one"),
					ExpressionAttributeNames: map[string]string{"#count": "count"},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":one": &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	}

	if _, err := l.client.TransactWriteItems(ctx, input); err != nil {
		if isDuplicate(err) {
			return domain.AlreadyExists, nil
		}
		return 0, fmt.Errorf("transact write rsvp: %w", err)
	}
	return domain.Inserted, nil
}

// isDuplicate reports whether the transaction was cancelled by the record's
// existence condition. Other cancellation reasons (e.g. TransactionConflict)
// are transient and are not duplicates.
func isDuplicate(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return false
	}
	for _, reason := range canceled.CancellationReasons {
		if aws.ToString(reason.Code) == conditionalCheckFailed {
			return true
		}
	}
	return false
}

func (l *attendanceLedger) GetCounters(ctx context.Context, eventID string) (domain.ResponseCounts, error) {
	keys := make([]map[string]types.AttributeValue, 0, len(domain.CountedResponses))
	for _, r := range domain.CountedResponses {
		keys = append(keys, map[string]types.AttributeValue{
			"pk": str(eventPK(eventID)),
			"sk": str(responsePrefix + string(r)),
		})
	}

	var counts domain.ResponseCounts
	request := map[string]types.KeysAndAttributes{l.table: {Keys: keys}}
	for attempt := 0; len(request) > 0; attempt++ {
		if attempt == maxBatchGetAttempts {
			return domain.ResponseCounts{}, fmt.Errorf("batch get counters: unprocessed keys after %d attempts", attempt)
		}
		out, err := l.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			return domain.ResponseCounts{}, fmt.Errorf("batch get counters: %w", err)
		}
		for _, item := range out.Responses[l.table] {
			sk := stringAttr(item, "sk")
			count, err := numberAttr(item, "count")
			if err != nil {
				return domain.ResponseCounts{}, fmt.Errorf("decode counter %q: %w", sk, err)
			}
			counts.Set(domain.Response(strings.TrimPrefix(sk, responsePrefix)), count)
		}
		request = out.UnprocessedKeys
	}
	return counts, nil
}

func (l *attendanceLedger) ListAttendees(ctx context.Context, eventID string, filter domain.AttendeeFilter) ([]*domain.AttendanceRecord, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(l.table),
		KeyConditionExpression: aws.String("pk = :pk AND begins_with(sk, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     str(eventPK(eventID)),
			":prefix": str(respondentPrefix),
		},
		ConsistentRead: aws.Bool(true),
	}
	if filter.Response != "" {
		input.FilterExpression = aws.String("#response = :response")
		input.ExpressionAttributeNames = map[string]string{"#response": "response"}
		input.ExpressionAttributeValues[":response"] = str(string(filter.Response))
	}

	records := make([]*domain.AttendanceRecord, 0)
	paginator := dynamodb.NewQueryPaginator(l.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query attendees: %w", err)
		}
		for _, item := range page.Items {
			rec, err := decodeRecord(eventID, item)
			if err != nil {
				return nil, err
			}
			if filter.Matches(rec) {
				records = append(records, rec)
			}
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmittedAt.Before(records[j].SubmittedAt)
	})
	return records, nil
}

func (l *attendanceLedger) Ping(ctx context.Context) error {
	_, err := l.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(l.table)})
	return err
}

func (l *attendanceLedger) Close() error { return nil }

func decodeRecord(eventID string, item map[string]types.AttributeValue) (*domain.AttendanceRecord, error) {
	ms, err := numberAttr(item, "timestamp")
	if err != nil {
		return nil, fmt.Errorf("decode attendee timestamp: %w", err)
	}
	return &domain.AttendanceRecord{
		EventID:     eventID,
		Email:       stringAttr(item, "email"),
		FullName:    stringAttr(item, "full_name"),
		Response:    domain.Response(stringAttr(item, "response")),
		SubmittedAt: time.UnixMilli(ms).UTC(),
	}, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

// numberAttr reads a numeric attribute; a missing attribute reads as 0.
func numberAttr(item map[string]types.AttributeValue, name string) (int64, error) {
	v, ok := item[name].(*types.AttributeValueMemberN)
	if !ok {
		return 0, nil
	}
	return strconv.ParseInt(v.Value, 10, 64)
}
