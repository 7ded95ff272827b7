// Package cloudwatch implements the LogStore over CloudWatch Logs:
// partitions map to log groups, sub-partitions to log streams, and searches
// to Logs Insights queries.
package cloudwatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"chronicle/internal/history"
)

// API is the slice of the cloudwatchlogs client the store uses.
type API interface {
	CreateLogGroup(ctx context.Context, in *cloudwatchlogs.CreateLogGroupInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(ctx context.Context, in *cloudwatchlogs.CreateLogStreamInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, in *cloudwatchlogs.PutLogEventsInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
	StartQuery(ctx context.Context, in *cloudwatchlogs.StartQueryInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.StartQueryOutput, error)
	GetQueryResults(ctx context.Context, in *cloudwatchlogs.GetQueryResultsInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetQueryResultsOutput, error)
}

// Store talks to CloudWatch Logs through the injected API client.
type Store struct {
	api API
}

// New constructs a CloudWatch-backed store.
func New(api API) *Store {
	return &Store{api: api}
}

// EnsurePartition creates the log group; an already-existing group is
// success.
func (s *Store) EnsurePartition(ctx context.Context, name string) error {
	_, err := s.api.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil && !alreadyExists(err) {
		return fmt.Errorf("create log group: %w", err)
	}
	return nil
}

// AppendRecord creates the log stream (idempotently) and puts one event.
func (s *Store) AppendRecord(ctx context.Context, partition, subpartition string, timestampMillis int64, message []byte) error {
	_, err := s.api.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(partition),
		LogStreamName: aws.String(subpartition),
	})
	if err != nil && !alreadyExists(err) {
		return fmt.Errorf("create log stream: %w", err)
	}

	_, err = s.api.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(partition),
		LogStreamName: aws.String(subpartition),
		LogEvents: []types.InputLogEvent{{
			Timestamp: aws.Int64(timestampMillis),
			Message:   aws.String(string(message)),
		}},
	})
	if err != nil {
		return fmt.Errorf("put log events: %w", err)
	}
	return nil
}

// StartSearch submits a Logs Insights query over the window and returns the
// query id for polling.
func (s *Store) StartSearch(ctx context.Context, q history.SearchQuery) (string, error) {
	query := fmt.Sprintf(
		`fields @timestamp, @message | filter @message like "%s" | sort @timestamp desc`,
		escapeFilter(q.Filter),
	)
	out, err := s.api.StartQuery(ctx, &cloudwatchlogs.StartQueryInput{
		LogGroupName: aws.String(q.Partition),
		StartTime:    aws.Int64(q.StartMillis / 1000),
		EndTime:      aws.Int64(q.EndMillis / 1000),
		QueryString:  aws.String(query),
	})
	if err != nil {
		return "", fmt.Errorf("start query: %w", err)
	}
	return aws.ToString(out.QueryId), nil
}

// SearchResults polls one query status snapshot and converts its rows.
func (s *Store) SearchResults(ctx context.Context, handle string) (history.SearchPage, error) {
	out, err := s.api.GetQueryResults(ctx, &cloudwatchlogs.GetQueryResultsInput{
		QueryId: aws.String(handle),
	})
	if err != nil {
		return history.SearchPage{}, fmt.Errorf("get query results: %w", err)
	}

	page := history.SearchPage{Status: convertStatus(out.Status)}
	for _, result := range out.Results {
		var row history.SearchRow
		for _, field := range result {
			switch aws.ToString(field.Field) {
			case "@message":
				row.Message = aws.ToString(field.Value)
			case "@timestamp":
				row.Timestamp = aws.ToString(field.Value)
			}
		}
		if row.Message != "" {
			page.Rows = append(page.Rows, row)
		}
	}
	return page, nil
}

func convertStatus(status types.QueryStatus) history.SearchStatus {
	switch status {
	case types.QueryStatusScheduled:
		return history.SearchStatusScheduled
	case types.QueryStatusRunning:
		return history.SearchStatusRunning
	case types.QueryStatusComplete:
		return history.SearchStatusComplete
	case types.QueryStatusCancelled:
		return history.SearchStatusCancelled
	default:
		return history.SearchStatusFailed
	}
}

// escapeFilter neutralizes Logs Insights string syntax in the match text so
// identifiers cannot break out of the quoted literal.
func escapeFilter(filter string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return replacer.Replace(filter)
}

func alreadyExists(err error) bool {
	var exists *types.ResourceAlreadyExistsException
	return errors.As(err, &exists)
}
