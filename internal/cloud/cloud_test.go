package cloud

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
	"github.com/ANIKETSHETTY47/coolcalc/internal/repository"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	expires time.Duration
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://" + aws.ToString(in.Bucket) + ".s3.example/" + aws.ToString(in.Key)}, nil
}

func TestUploadReport(t *testing.T) {
	fake := &fakeS3{}
	c := &S3Client{svc: fake, presign: fake, bucket: "reports-bucket", ttl: 15 * time.Minute}

	key := ReportKey("freezer", "abc")
	url, err := c.UploadReport(context.Background(), key, []byte("<html></html>"), "text/html")
	require.NoError(t, err)

	assert.Equal(t, "reports/freezer/abc.html", key)
	assert.Equal(t, "https://reports-bucket.s3.example/reports/freezer/abc.html", url)
	assert.Equal(t, "text/html", aws.ToString(fake.put.ContentType))
	assert.Equal(t, "<html></html>", string(fake.body))
	assert.Equal(t, 15*time.Minute, fake.expires)
}

func TestUploadReportError(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	c := &S3Client{svc: fake, presign: fake, bucket: "b", ttl: time.Hour}

	_, err := c.UploadReport(context.Background(), "k", nil, "text/html")
	assert.ErrorContains(t, err, "failed to upload to S3")
}

type fakeSNS struct {
	in *sns.PublishInput
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.in = in
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestSendShareNotice(t *testing.T) {
	fake := &fakeSNS{}
	c := &SNSClient{svc: fake, topicArn: "arn:aws:sns:us-east-1:1:share", log: zerolog.Nop()}
	rec := &domain.CalculationRecord{
		ID: "calc-1", Room: domain.BlastFreezer, FinalKW: 42.5, TotalTR: 12.08,
		CreatedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}

	require.NoError(t, c.SendShareNotice(context.Background(), rec, "https://example/r"))
	assert.Equal(t, "arn:aws:sns:us-east-1:1:share", aws.ToString(fake.in.TopicArn))
	assert.Equal(t, "CoolCalc: Blast Freezer report shared", aws.ToString(fake.in.Subject))
	assert.Contains(t, aws.ToString(fake.in.Message), "42.50 kW (12.08 TR)")
	assert.Contains(t, aws.ToString(fake.in.Message), "https://example/r")
}

type fakeDynamo struct {
	items    map[string]map[string]types.AttributeValue
	lastList *dynamodb.QueryInput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	id := in.Item["calculationId"].(*types.AttributeValueMemberS).Value
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.lastList = in
	uid := in.ExpressionAttributeValues[":uid"].(*types.AttributeValueMemberS).Value
	var items []map[string]types.AttributeValue
	for _, item := range f.items {
		if item["userId"].(*types.AttributeValueMemberS).Value == uid {
			items = append(items, item)
		}
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	id := in.Key["calculationId"].(*types.AttributeValueMemberS).Value
	if _, ok := f.items[id]; !ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamoDBHistory(t *testing.T) {
	fake := &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
	c := &DynamoDBClient{svc: fake, table: "Calculations"}
	ctx := context.Background()
	rec := &domain.CalculationRecord{
		ID: "calc-1", UserID: "u1", Room: domain.ColdRoom, FinalKW: 22.4, TotalTR: 6.37,
		CreatedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), Summary: `{"roomType":"coldroom"}`,
	}

	require.NoError(t, c.SaveCalculation(ctx, rec))

	var stored domain.CalculationRecord
	require.NoError(t, attributevalue.UnmarshalMap(fake.items["calc-1"], &stored))
	assert.Equal(t, rec.UserID, stored.UserID)
	assert.Equal(t, rec.Room, stored.Room)
	assert.Equal(t, rec.FinalKW, stored.FinalKW)
	assert.Equal(t, rec.Summary, stored.Summary)
	assert.True(t, rec.CreatedAt.Equal(stored.CreatedAt))

	got, err := c.ListCalculations(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "calc-1", got[0].ID)
	assert.Equal(t, userIndex, aws.ToString(fake.lastList.IndexName))
	assert.False(t, aws.ToBool(fake.lastList.ScanIndexForward))

	require.NoError(t, c.DeleteCalculation(ctx, "calc-1"))
	assert.ErrorIs(t, c.DeleteCalculation(ctx, "calc-1"), repository.ErrNotFound)
}
