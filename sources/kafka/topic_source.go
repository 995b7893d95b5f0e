// Package kafka provides fetchz data sources backed by a Kafka cluster's
// admin API. Identities are topic names; GetMany resolves a whole batch
// with a single admin round-trip, so independent topic lookups across a
// fetch collapse into one request per round.
package kafka

import (
	"context"
	"errors"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// TopicMetadata is the fetched value of TopicSource.
type TopicMetadata struct {
	Topic             string
	ID                kadm.TopicID
	Partitions        int
	ReplicationFactor int
}

// TopicSource fetches topic metadata by topic name.
type TopicSource struct {
	adm *kadm.Client
}

func NewTopicSource(client *kgo.Client) *TopicSource {
	return &TopicSource{adm: kadm.NewClient(client)}
}

func NewTopicSourceFromAdmin(adm *kadm.Client) *TopicSource {
	return &TopicSource{adm: adm}
}

func (s *TopicSource) Name() string {
	return "kafka.topic-metadata"
}

func (s *TopicSource) Get(ctx context.Context, topic string) (TopicMetadata, bool, error) {
	res, err := s.GetMany(ctx, []string{topic})
	if err != nil {
		return TopicMetadata{}, false, err
	}
	md, ok := res[topic]
	return md, ok, nil
}

func (s *TopicSource) GetMany(ctx context.Context, topics []string) (map[string]TopicMetadata, error) {
	details, err := s.adm.ListTopics(ctx, topics...)
	if err != nil {
		return nil, err
	}

	out := make(map[string]TopicMetadata, len(details))
	for name, d := range details {
		if d.Err != nil {
			if errors.Is(d.Err, kerr.UnknownTopicOrPartition) {
				continue
			}
			return nil, d.Err
		}
		md := TopicMetadata{
			Topic:      name,
			ID:         d.ID,
			Partitions: len(d.Partitions),
		}
		for _, p := range d.Partitions {
			md.ReplicationFactor = len(p.Replicas)
			break
		}
		out[name] = md
	}
	return out, nil
}
