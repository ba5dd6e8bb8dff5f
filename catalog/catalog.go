package catalog

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"
	"github.com/kondzio13/alis/chord"
	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("solo not found")

// Store keeps a record of every solo written.
type Store interface {
	Put(ctx context.Context, rec model.SoloRecord) error
	Get(ctx context.Context, id string) (model.SoloRecord, error)
	List(ctx context.Context) ([]model.SoloRecord, error)
}

func NewRecord(k model.Key, progression model.Progression, path string, numNotes int, sample string) model.SoloRecord {
	return model.SoloRecord{
		Id:          uuid.New().String(),
		Key:         k.Name,
		Minor:       k.Minor,
		Progression: chord.FormatProgression(progression),
		Path:        path,
		NumNotes:    numNotes,
		Sample:      sample,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

var _ Store = (*DynamoStore)(nil)

type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamoStore(endpoint string, region string, table string) (*DynamoStore, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewDynamoStoreWithClient(dynamodb.New(sess), table), nil
}

func NewDynamoStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func (s *DynamoStore) Put(ctx context.Context, rec model.SoloRecord) error {
	item, err := dynamodbattribute.MarshalMap(rec)
	if err != nil {
		return errors.Wrap(err, "could not marshal solo record")
	}
	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return errors.Wrap(err, "error from DynamoDB")
}

func (s *DynamoStore) Get(ctx context.Context, id string) (model.SoloRecord, error) {
	var rec model.SoloRecord
	out, err := s.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return rec, errors.Wrap(err, "error from DynamoDB")
	}
	if len(out.Item) == 0 {
		return rec, errors.Wrap(ErrNotFound, id)
	}
	err = dynamodbattribute.UnmarshalMap(out.Item, &rec)
	return rec, errors.Wrap(err, "could not unmarshal solo record")
}

func (s *DynamoStore) List(ctx context.Context) ([]model.SoloRecord, error) {
	var res []model.SoloRecord
	var unmarshalErr error
	err := s.client.ScanPagesWithContext(ctx, &dynamodb.ScanInput{TableName: aws.String(s.table)},
		func(page *dynamodb.ScanOutput, lastPage bool) bool {
			var recs []model.SoloRecord
			if err := dynamodbattribute.UnmarshalListOfMaps(page.Items, &recs); err != nil {
				unmarshalErr = err
				return false
			}
			res = append(res, recs...)
			return true
		})
	if err != nil {
		return nil, errors.Wrap(err, "error from DynamoDB")
	}
	if unmarshalErr != nil {
		return nil, errors.Wrap(unmarshalErr, "could not unmarshal solo records")
	}
	return res, nil
}
