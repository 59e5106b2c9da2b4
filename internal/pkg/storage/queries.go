package storage

import (
	"encoding/json"

	"github.com/diwise/road-segments/internal/app/segments/features"
	"github.com/jackc/pgx/v5"
)

const (
	selectCollection = `SELECT type, members FROM segment_collection WHERE id=1;`
	selectFeatures   = `SELECT feature FROM segments ORDER BY position;`
	countFeatures    = `SELECT count(*) FROM segments;`
	deleteFeatures   = `DELETE FROM segments;`

	upsertCollection = `
	INSERT INTO segment_collection(id, type, members) VALUES (1, @type, @members::text::jsonb)
	ON CONFLICT (id) DO UPDATE SET type=EXCLUDED.type, members=EXCLUDED.members;`

	updateAttribute = `
	UPDATE segments
	SET feature=jsonb_set(feature, ARRAY['properties', @attribute_name::text], @attribute_value::text::jsonb, true),
		modified_on=CURRENT_TIMESTAMP
	WHERE jsonb_typeof(feature->'properties') = 'object'
	  AND segment_id IN (SELECT jsonb_array_elements(@ids::text::jsonb));`
)

func newUpdateAttributeArgs(ids features.IDSet, attributeName string, attributeValue any) (pgx.NamedArgs, error) {
	i, err := json.Marshal(ids.Values())
	if err != nil {
		return nil, err
	}

	v, err := json.Marshal(attributeValue)
	if err != nil {
		return nil, err
	}

	return pgx.NamedArgs{
		"ids":             string(i),
		"attribute_name":  attributeName,
		"attribute_value": string(v),
	}, nil
}

func newCollectionArgs(fc features.FeatureCollection) (pgx.NamedArgs, error) {
	args := pgx.NamedArgs{
		"type":    nil,
		"members": nil,
	}

	if fc.Type != "" {
		args["type"] = fc.Type
	}

	if len(fc.Members) > 0 {
		b, err := json.Marshal(fc.Members)
		if err != nil {
			return nil, err
		}
		args["members"] = string(b)
	}

	return args, nil
}
