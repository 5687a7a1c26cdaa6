package mongo

import (
	"time"

	"github.com/google/uuid"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// toMS приводит время к точности MongoDB DateTime (миллисекунды, UTC).
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

// parseID разбирает строковый _id обратно в uuid.
// Нечитаемый идентификатор в своей же коллекции — повреждённые данные,
// поэтому ошибка не маскируется.
func parseID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// isDuplicate — нарушение уникального индекса.
func isDuplicate(err error) bool {
	return mongodriver.IsDuplicateKeyError(err)
}

// uuidsToStrings конвертирует список идентификаторов для хранения.
func uuidsToStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// stringsToUUIDs конвертирует список идентификаторов из хранилища.
func stringsToUUIDs(ss []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		id, err := parseID(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
