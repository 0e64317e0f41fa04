package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/subhajit/appointment-booking/internal/model"
	"github.com/subhajit/appointment-booking/internal/storage"
)

// DoctorRepository is a Redis-backed doctor directory.
// Records are JSON under booking:doctor:<id>, indexed by the booking:doctors sorted set.
type DoctorRepository struct {
	client *redis.Client
}

// NewDoctorRepository creates a repository on an existing client
func NewDoctorRepository(client *redis.Client) *DoctorRepository {
	return &DoctorRepository{client: client}
}

// Ensure DoctorRepository implements the interface
var _ storage.DoctorRepository = (*DoctorRepository)(nil)

func (r *DoctorRepository) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	ids, err := r.client.ZRange(ctx, doctorIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Doctor{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		keys = append(keys, doctorKey(model.DoctorID(id)))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	doctors := make([]*model.Doctor, 0, len(values))
	for _, v := range values {
		data, ok := v.(string)
		if !ok {
			// Index entry whose record is gone
			continue
		}
		var d model.Doctor
		if err := json.Unmarshal([]byte(data), &d); err != nil {
			return nil, err
		}
		doctors = append(doctors, &d)
	}
	return doctors, nil
}

func (r *DoctorRepository) GetDoctor(ctx context.Context, id model.DoctorID) (*model.Doctor, error) {
	data, err := r.client.Get(ctx, doctorKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDoctorNotFound
		}
		return nil, err
	}

	var d model.Doctor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	id, err := r.client.Incr(ctx, doctorSeqKey()).Result()
	if err != nil {
		return err
	}
	doctor.ID = model.DoctorID(id)

	data, err := json.Marshal(doctor)
	if err != nil {
		return err
	}

	// Record and index are written together
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, doctorKey(doctor.ID), data, 0)
		pipe.ZAdd(ctx, doctorIndexKey(), redis.Z{Score: float64(doctor.ID), Member: strconv.FormatInt(id, 10)})
		return nil
	})
	return err
}

func (r *DoctorRepository) UpdateDoctor(ctx context.Context, doctor *model.Doctor) error {
	data, err := json.Marshal(doctor)
	if err != nil {
		return err
	}

	// SET XX only overwrites an existing record
	updated, err := r.client.SetXX(ctx, doctorKey(doctor.ID), data, 0).Result()
	if err != nil {
		return err
	}
	if !updated {
		return model.ErrDoctorNotFound
	}
	return nil
}

func (r *DoctorRepository) DeleteDoctor(ctx context.Context, id model.DoctorID) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, doctorKey(id))
		pipe.ZRem(ctx, doctorIndexKey(), strconv.FormatInt(int64(id), 10))
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return model.ErrDoctorNotFound
	}
	return nil
}
