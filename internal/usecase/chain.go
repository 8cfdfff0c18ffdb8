package usecase

import "context"

// step — именованный шаг конвейера проверки; ошибка останавливает конвейер.
type step[T any] struct {
	name string
	run  func(ctx context.Context, state *T) error
}

// chain — упорядоченная последовательность шагов с остановкой на первой ошибке.
type chain[T any] []step[T]

// run выполняет шаги по порядку и возвращает имя упавшего шага и его ошибку.
func (c chain[T]) run(ctx context.Context, state *T) (string, error) {
	for _, s := range c {
		if err := s.run(ctx, state); err != nil {
			return s.name, err
		}
	}
	return "", nil
}

// names — имена шагов в порядке выполнения.
func (c chain[T]) names() []string {
	out := make([]string, 0, len(c))
	for _, s := range c {
		out = append(out, s.name)
	}
	return out
}

