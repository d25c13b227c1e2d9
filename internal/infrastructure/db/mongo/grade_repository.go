package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/redeescolar/school-portal/internal/core/domain"
)

const (
	gradeCollection      = "grades"
	attendanceCollection = "attendance"
	classCollection      = "classes"
)

type MongoGradeRepository struct {
	coll *mongo.Collection
}

func NewGradeRepository(db *mongo.Database) *MongoGradeRepository {
	return &MongoGradeRepository{coll: db.Collection(gradeCollection)}
}

type mongoGrade struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StudentID string             `bson:"student_id"`
	ClassID   string             `bson:"class_id"`
	Value     float64            `bson:"value"`
	Term      string             `bson:"term"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *MongoGradeRepository) Create(ctx context.Context, g *domain.Grade) error {
	res, err := r.coll.InsertOne(ctx, mongoGrade{
		StudentID: g.StudentID,
		ClassID:   g.ClassID,
		Value:     g.Value,
		Term:      g.Term,
		CreatedAt: g.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert grade: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = oid.Hex()
	}
	return nil
}

func (r *MongoGradeRepository) ListByStudent(ctx context.Context, studentID string) ([]*domain.Grade, error) {
	return r.list(ctx, bson.M{"student_id": studentID})
}

func (r *MongoGradeRepository) ListByClass(ctx context.Context, classID string) ([]*domain.Grade, error) {
	return r.list(ctx, bson.M{"class_id": classID})
}

func (r *MongoGradeRepository) list(ctx context.Context, query bson.M) ([]*domain.Grade, error) {
	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	defer cursor.Close(ctx)

	var grades []*domain.Grade
	for cursor.Next(ctx) {
		var mg mongoGrade
		if err := cursor.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode grade: %w", err)
		}
		grades = append(grades, &domain.Grade{
			ID:        mg.ID.Hex(),
			StudentID: mg.StudentID,
			ClassID:   mg.ClassID,
			Value:     mg.Value,
			Term:      mg.Term,
			CreatedAt: mg.CreatedAt,
		})
	}
	return grades, cursor.Err()
}

type MongoAttendanceRepository struct {
	coll *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *MongoAttendanceRepository {
	return &MongoAttendanceRepository{coll: db.Collection(attendanceCollection)}
}

type mongoAttendance struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StudentID string             `bson:"student_id"`
	ClassID   string             `bson:"class_id"`
	Date      time.Time          `bson:"date"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *MongoAttendanceRepository) Create(ctx context.Context, a *domain.Attendance) error {
	res, err := r.coll.InsertOne(ctx, mongoAttendance{
		StudentID: a.StudentID,
		ClassID:   a.ClassID,
		Date:      a.Date,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *MongoAttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]*domain.Attendance, error) {
	return r.list(ctx, bson.M{"student_id": studentID})
}

func (r *MongoAttendanceRepository) ListByClassAndDate(ctx context.Context, classID string, date time.Time) ([]*domain.Attendance, error) {
	day := date.Truncate(24 * time.Hour)
	return r.list(ctx, bson.M{
		"class_id": classID,
		"date":     bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)},
	})
}

func (r *MongoAttendanceRepository) list(ctx context.Context, query bson.M) ([]*domain.Attendance, error) {
	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.Attendance
	for cursor.Next(ctx) {
		var ma mongoAttendance
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		records = append(records, &domain.Attendance{
			ID:        ma.ID.Hex(),
			StudentID: ma.StudentID,
			ClassID:   ma.ClassID,
			Date:      ma.Date,
			Status:    domain.AttendanceStatus(ma.Status),
			CreatedAt: ma.CreatedAt,
		})
	}
	return records, cursor.Err()
}

type MongoClassRepository struct {
	coll *mongo.Collection
}

func NewClassRepository(db *mongo.Database) *MongoClassRepository {
	return &MongoClassRepository{coll: db.Collection(classCollection)}
}

type mongoClass struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Subject   string             `bson:"subject"`
	SchoolID  string             `bson:"school_id"`
	TeacherID string             `bson:"teacher_id"`
	Year      int                `bson:"year"`
}

func (r *MongoClassRepository) FindByID(ctx context.Context, id string) (*domain.Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClassNotFound
	}

	var mc mongoClass
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClassNotFound
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoClassRepository) ListBySchool(ctx context.Context, schoolID string) ([]*domain.Class, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"school_id": schoolID})
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer cursor.Close(ctx)

	var classes []*domain.Class
	for cursor.Next(ctx) {
		var mc mongoClass
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode class: %w", err)
		}
		classes = append(classes, mc.toDomain())
	}
	return classes, cursor.Err()
}

func (mc *mongoClass) toDomain() *domain.Class {
	return &domain.Class{
		ID:        mc.ID.Hex(),
		Name:      mc.Name,
		Subject:   mc.Subject,
		SchoolID:  mc.SchoolID,
		TeacherID: mc.TeacherID,
		Year:      mc.Year,
	}
}
