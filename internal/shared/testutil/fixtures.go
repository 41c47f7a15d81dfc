package testutil

// SampleCSV is a three-location PDX export in the pt-BR layout: ";" as
// delimiter, "," as decimal mark and "." for thousands.
//
// Figures: impressions 8000, reach 3500, two locations in PE and one in SP.
// Brand mentions across #1-#3 Marca: Apple 2, Samsung 1, Motorola 1.
const SampleCSV = "\xEF\xBB\xBF" +
	"PDX_ID;NOME;PDX_ENDERECO;PDX_CIDADE;PDX_ESTADO;PDX_BAIRRO;PDX_LAT;PDX_LNG;" +
	"Alcance Geral Target;Impactos Gerais;Frequência Média;Gênero (Masculino);Gênero (Feminino);" +
	"Faixa Etária (18_24);Nível Socioeconômico (A);Plataforma (ios);Plataforma (Android);" +
	"#1 Marca;#2 Marca;#3 Marca;#1 Operadora\n" +
	"1;Loja Boa Viagem;Av. Boa Viagem;Recife;PE;Boa Viagem;-8,05;-34,90;" +
	"1.000 (40%);3.000;3;600;400;100;50;300;700;Apple (40%);Apple (40%);N/A;Vivo (55%)\n" +
	"2;Loja Derby;;Recife;PE;Derby;-8,06;-34,91;" +
	"500;1.000;2;0;500;0;20;;;Samsung (20%);;;Claro\n" +
	"3;Loja Paulista;Av. Paulista;São Paulo;SP;Bela Vista;-23,55;-46,63;" +
	"2.000;4.000;2;900;;;;;;Motorola;;;\n"

// SampleMissingLongitudeCSV lacks the PDX_LNG column entirely.
const SampleMissingLongitudeCSV = "PDX_LAT;NOME\n-8,05;Loja A\n"
