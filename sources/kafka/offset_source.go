package kafka

import (
	"context"
	"errors"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// EndOffsets maps partition to its current end offset.
type EndOffsets map[int32]int64

// EndOffsetSource fetches per-partition end offsets by topic name.
type EndOffsetSource struct {
	adm *kadm.Client
}

func NewEndOffsetSource(client *kgo.Client) *EndOffsetSource {
	return &EndOffsetSource{adm: kadm.NewClient(client)}
}

func NewEndOffsetSourceFromAdmin(adm *kadm.Client) *EndOffsetSource {
	return &EndOffsetSource{adm: adm}
}

func (s *EndOffsetSource) Name() string {
	return "kafka.end-offsets"
}

func (s *EndOffsetSource) Get(ctx context.Context, topic string) (EndOffsets, bool, error) {
	res, err := s.GetMany(ctx, []string{topic})
	if err != nil {
		return nil, false, err
	}
	offsets, ok := res[topic]
	return offsets, ok, nil
}

func (s *EndOffsetSource) GetMany(ctx context.Context, topics []string) (map[string]EndOffsets, error) {
	listed, err := s.adm.ListEndOffsets(ctx, topics...)
	if err != nil {
		return nil, err
	}

	out := make(map[string]EndOffsets, len(listed))
	var iterErr error
	listed.Each(func(o kadm.ListedOffset) {
		if o.Err != nil {
			if errors.Is(o.Err, kerr.UnknownTopicOrPartition) {
				return
			}
			if iterErr == nil {
				iterErr = o.Err
			}
			return
		}
		offsets := out[o.Topic]
		if offsets == nil {
			offsets = make(EndOffsets)
			out[o.Topic] = offsets
		}
		offsets[o.Partition] = o.Offset
	})
	if iterErr != nil {
		return nil, iterErr
	}
	return out, nil
}
