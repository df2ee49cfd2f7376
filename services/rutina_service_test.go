package services

import (
	"context"
	"errors"
	"testing"

	"github.com/francosciascia/expert-giggle/models"

	"github.com/stretchr/testify/require"
)

func TestCreateRutina_RetrievableAndConflictOnSameName(t *testing.T) {
	ctx := context.Background()
	svc := NewRutinaService(newTestDB(t), nil)

	created, err := svc.Create(ctx, models.RutinaCreate{
		Nombre:      "Push Day",
		Descripcion: ptr("pecho y hombro"),
		Ejercicios:  []models.EjercicioCreate{ex("Press banca", models.Lunes, 0)},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Len(t, created.Ejercicios, 1)
	require.Equal(t, created.ID, created.Ejercicios[0].RutinaID)
	require.False(t, created.FechaCreacion.IsZero())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Push Day", got.Nombre)
	require.Equal(t, "pecho y hombro", *got.Descripcion)

	_, err = svc.Create(ctx, models.RutinaCreate{Nombre: "Push Day"})
	require.ErrorIs(t, err, ErrConflict)

	var se *ServiceError
	require.True(t, errors.As(err, &se))
	require.Equal(t, MsgNombreDuplicado, se.Msg)
}

func TestGetRutina_NotFound(t *testing.T) {
	svc := NewRutinaService(newTestDB(t), nil)
	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetRutina_ExercisesSortedByOrden(t *testing.T) {
	svc := NewRutinaService(newTestDB(t), nil)
	r := mustCreate(t, svc, "Full Body",
		ex("C", models.Lunes, 2),
		ex("A", models.Viernes, 0),
		ex("B", models.Martes, 1),
	)

	got, err := svc.Get(context.Background(), r.ID)
	require.NoError(t, err)
	require.Len(t, got.Ejercicios, 3)
	for i := 1; i < len(got.Ejercicios); i++ {
		require.LessOrEqual(t, got.Ejercicios[i-1].Orden, got.Ejercicios[i].Orden)
	}
	require.Equal(t, "A", got.Ejercicios[0].Nombre)
}

func TestUpdateRutina(t *testing.T) {
	ctx := context.Background()
	svc := NewRutinaService(newTestDB(t), nil)
	a := mustCreate(t, svc, "A")
	mustCreate(t, svc, "B")

	got, err := svc.Update(ctx, a.ID, models.RutinaUpdate{Descripcion: ptr("nueva")})
	require.NoError(t, err)
	require.Equal(t, "A", got.Nombre)
	require.Equal(t, "nueva", *got.Descripcion)

	got, err = svc.Update(ctx, a.ID, models.RutinaUpdate{Nombre: ptr("A2")})
	require.NoError(t, err)
	require.Equal(t, "A2", got.Nombre)

	// renaming to its own name is not a conflict
	_, err = svc.Update(ctx, a.ID, models.RutinaUpdate{Nombre: ptr("A2")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, models.RutinaUpdate{Nombre: ptr("B")})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Update(ctx, 999, models.RutinaUpdate{Nombre: ptr("X")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRutina_RemovesExercisesAndPlanEntries(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewRutinaService(db, nil)
	plan := NewPlanService(db, nil)

	r := mustCreate(t, svc, "Legs", ex("Sentadilla", models.Lunes, 0), ex("Prensa", models.Jueves, 1))
	keep := mustCreate(t, svc, "Arms", ex("Curl", models.Martes, 0))
	_, err := plan.Assign(ctx, models.PlanDiaUpdate{DiaSemana: models.Lunes, RutinaID: r.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, r.ID))

	var orphans int64
	require.NoError(t, db.Model(&models.Ejercicio{}).Where("rutina_id = ?", r.ID).Count(&orphans).Error)
	require.Zero(t, orphans)

	var remaining int64
	require.NoError(t, db.Model(&models.Ejercicio{}).Where("rutina_id = ?", keep.ID).Count(&remaining).Error)
	require.EqualValues(t, 1, remaining)

	week, err := plan.GetWeek(ctx)
	require.NoError(t, err)
	require.Nil(t, week[0].RutinaID)

	require.ErrorIs(t, svc.Delete(ctx, r.ID), ErrNotFound)
}

func TestAddExercise(t *testing.T) {
	ctx := context.Background()
	svc := NewRutinaService(newTestDB(t), nil)
	r := mustCreate(t, svc, "Core")

	e, err := svc.AddExercise(ctx, r.ID, models.EjercicioCreate{
		Nombre: "Plancha", DiaSemana: models.Sabado, Series: 3, Repeticiones: 1, Peso: ptr(0.0),
	})
	require.NoError(t, err)
	require.Equal(t, r.ID, e.RutinaID)
	require.Equal(t, 0, e.Orden)
	require.NotNil(t, e.Peso)

	_, err = svc.AddExercise(ctx, 999, ex("X", models.Lunes, 0))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReorderExercises_SortsByWeekdayThenOrden(t *testing.T) {
	ctx := context.Background()
	svc := NewRutinaService(newTestDB(t), nil)
	r := mustCreate(t, svc, "Split",
		ex("A", models.Martes, 0),
		ex("B", models.Lunes, 1),
		ex("C", models.Lunes, 0),
	)
	ids := map[string]uint{}
	for _, e := range r.Ejercicios {
		ids[e.Nombre] = e.ID
	}

	got, err := svc.ReorderExercises(ctx, r.ID, []models.EjercicioOrden{{ID: ids["C"], Orden: 2}})
	require.NoError(t, err)

	var names []string
	for _, e := range got.Ejercicios {
		names = append(names, e.Nombre)
	}
	require.Equal(t, []string{"B", "C", "A"}, names)
}

func TestReorderExercises_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewRutinaService(db, nil)
	r := mustCreate(t, svc, "Mine", ex("A", models.Lunes, 0), ex("B", models.Lunes, 1))
	other := mustCreate(t, svc, "Other", ex("Z", models.Lunes, 0))

	_, err := svc.ReorderExercises(ctx, r.ID, []models.EjercicioOrden{
		{ID: r.Ejercicios[0].ID, Orden: 7},
		{ID: other.Ejercicios[0].ID, Orden: 8},
	})
	require.ErrorIs(t, err, ErrBadRequest)

	got, err := svc.Get(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.Ejercicios[0].Orden)
	require.Equal(t, 1, got.Ejercicios[1].Orden)

	_, err = svc.ReorderExercises(ctx, r.ID, nil)
	require.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.ReorderExercises(ctx, r.ID, []models.EjercicioOrden{
		{ID: r.Ejercicios[0].ID, Orden: 1},
		{ID: r.Ejercicios[0].ID, Orden: 2},
	})
	require.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.ReorderExercises(ctx, 999, []models.EjercicioOrden{{ID: 1, Orden: 1}})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateRutina_CopyNames(t *testing.T) {
	ctx := context.Background()
	svc := NewRutinaService(newTestDB(t), nil)
	orig := mustCreate(t, svc, "Push Day",
		models.EjercicioCreate{Nombre: "Press", DiaSemana: models.Lunes, Series: 4, Repeticiones: 8, Peso: ptr(60.5), Notas: ptr("lento"), Orden: ptr(3)},
	)

	first, err := svc.Duplicate(ctx, orig.ID)
	require.NoError(t, err)
	require.Equal(t, "Push Day (copia)", first.Nombre)
	require.NotEqual(t, orig.ID, first.ID)
	require.Len(t, first.Ejercicios, 1)

	copied, src := first.Ejercicios[0], orig.Ejercicios[0]
	require.NotEqual(t, src.ID, copied.ID)
	require.Equal(t, first.ID, copied.RutinaID)
	require.Equal(t, src.Nombre, copied.Nombre)
	require.Equal(t, src.DiaSemana, copied.DiaSemana)
	require.Equal(t, src.Series, copied.Series)
	require.Equal(t, src.Repeticiones, copied.Repeticiones)
	require.Equal(t, *src.Peso, *copied.Peso)
	require.Equal(t, *src.Notas, *copied.Notas)
	require.Equal(t, 3, copied.Orden)

	second, err := svc.Duplicate(ctx, orig.ID)
	require.NoError(t, err)
	require.Equal(t, "Push Day (copia 2)", second.Nombre)

	third, err := svc.Duplicate(ctx, orig.ID)
	require.NoError(t, err)
	require.Equal(t, "Push Day (copia 3)", third.Nombre)

	_, err = svc.Duplicate(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListRutinas_WeekdayFilterDeduplicates(t *testing.T) {
	ctx := context.Background()
	svc := NewRutinaService(newTestDB(t), nil)
	twice := mustCreate(t, svc, "Tuesday heavy", ex("A", models.Martes, 0), ex("B", models.Martes, 1))
	mustCreate(t, svc, "Monday only", ex("C", models.Lunes, 0))
	mixed := mustCreate(t, svc, "Mixed", ex("D", models.Lunes, 0), ex("E", models.Martes, 1))
	mustCreate(t, svc, "Empty")

	res, err := svc.List(ctx, RutinaFilter{DiaSemana: models.Martes, Limit: DefaultLimit})
	require.NoError(t, err)
	require.EqualValues(t, 2, res.Total)
	require.Len(t, res.Items, 2)
	require.Equal(t, twice.ID, res.Items[0].ID)
	require.EqualValues(t, 2, res.Items[0].TotalEjercicios)
	require.Equal(t, mixed.ID, res.Items[1].ID)
	require.EqualValues(t, 2, res.Items[1].TotalEjercicios)
}

func TestListRutinas_ExerciseNameAndPagination(t *testing.T) {
	ctx := context.Background()
	svc := NewRutinaService(newTestDB(t), nil)
	mustCreate(t, svc, "R1", ex("Press Banca", models.Lunes, 0))
	mustCreate(t, svc, "R2", ex("press militar", models.Martes, 0))
	mustCreate(t, svc, "R3", ex("Sentadilla", models.Martes, 0))
	mustCreate(t, svc, "R4")

	all, err := svc.List(ctx, RutinaFilter{Limit: DefaultLimit})
	require.NoError(t, err)
	require.EqualValues(t, 4, all.Total)
	require.EqualValues(t, 0, all.Items[3].TotalEjercicios)

	res, err := svc.List(ctx, RutinaFilter{EjercicioNombre: "PRESS", Limit: 1})
	require.NoError(t, err)
	require.EqualValues(t, 2, res.Total)
	require.Len(t, res.Items, 1)
	require.Equal(t, "R1", res.Items[0].Nombre)

	res, err = svc.List(ctx, RutinaFilter{EjercicioNombre: "press", Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, "R2", res.Items[0].Nombre)
	require.Equal(t, 1, res.Skip)

	res, err = svc.List(ctx, RutinaFilter{EjercicioNombre: "press", DiaSemana: models.Martes, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Equal(t, "R2", res.Items[0].Nombre)

	_, err = svc.List(ctx, RutinaFilter{Limit: 0})
	require.ErrorIs(t, err, ErrBadRequest)
	_, err = svc.List(ctx, RutinaFilter{Limit: MaxLimit + 1})
	require.ErrorIs(t, err, ErrBadRequest)
	_, err = svc.List(ctx, RutinaFilter{Skip: -1, Limit: 10})
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestSearchRutinas(t *testing.T) {
	ctx := context.Background()
	svc := NewRutinaService(newTestDB(t), nil)
	mustCreate(t, svc, "Push Day", ex("Press", models.Lunes, 0))
	mustCreate(t, svc, "push light", ex("Fondos", models.Jueves, 0))
	mustCreate(t, svc, "Pull Day", ex("Remo", models.Lunes, 0))

	res, err := svc.Search(ctx, RutinaFilter{Nombre: "PUSH", Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, res.Total)

	res, err = svc.Search(ctx, RutinaFilter{Nombre: "push", DiaSemana: models.Jueves, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Equal(t, "push light", res.Items[0].Nombre)

	_, err = svc.Search(ctx, RutinaFilter{Limit: 10})
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestRutina_SearchFoldsNonASCII(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewRutinaService(db, nil)
	a := mustCreate(t, svc, "ÉLITE Piernas", ex("Sentadilla BÚLGARA", models.Lunes, 0))
	mustCreate(t, svc, "Otra")

	res, err := svc.Search(ctx, RutinaFilter{Nombre: "élite", Limit: DefaultLimit})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Equal(t, a.ID, res.Items[0].ID)

	res, err = svc.List(ctx, RutinaFilter{EjercicioNombre: "búlgara", Limit: DefaultLimit})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)

	_, err = svc.Update(ctx, a.ID, models.RutinaUpdate{Nombre: ptr("ÑANDÚ")})
	require.NoError(t, err)
	res, err = svc.Search(ctx, RutinaFilter{Nombre: "ñandú", Limit: DefaultLimit})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
}
