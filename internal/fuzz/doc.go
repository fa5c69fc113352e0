// Package fuzztests houses Go fuzz harnesses for the redux front end and
// the semantic pipeline. They guard against panics and hangs on arbitrary
// input.
//
// Назначение: прогонять байты через FileSet, лексер, парсер и, если
// программа корректна, через анализ, инлайнинг и генерацию кода.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
